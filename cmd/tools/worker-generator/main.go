// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
)

var taskTypePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// Field is one top-level job variable of the generated worker's input.
type Field struct {
	Name     string
	JSONType string
	Required bool
}

func (f Field) GoName() string  { return upperFirst(f.Name) }
func (f Field) GoType() string  { return goTypeFromJSONType(f.JSONType) }
func (f Field) JSONTag() string { return jsonTagFromProperty(f.Name, f.Required) }

// WorkerData holds data for templates
type WorkerData struct {
	TaskType    string
	PackageName string
	Domain      string
	Fields      []Field
}

func (d WorkerData) RequiredNames() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// goTypeFromJSONType maps JSON schema types to Go types
func goTypeFromJSONType(jsonType string) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		return "[]int"
	default:
		return "interface{}"
	}
}

// jsonTagFromProperty creates a JSON tag for a property
func jsonTagFromProperty(propName string, required bool) string {
	if required {
		return fmt.Sprintf("`json:\"%s\"`", propName)
	}
	return fmt.Sprintf("`json:\"%s,omitempty\"`", propName)
}

// upperFirst makes the first character uppercase
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// parseFields reads "name:type[?]" pairs separated by commas. A trailing ? marks the field optional.
func parseFields(spec string) ([]Field, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	var fields []Field
	seen := make(map[string]bool)
	for _, part := range strings.Split(spec, ",") {
		name, jsonType, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("field %q must be name:type", part)
		}
		required := !strings.HasSuffix(jsonType, "?")
		jsonType = strings.TrimSuffix(jsonType, "?")

		if goTypeFromJSONType(jsonType) == "interface{}" {
			return nil, fmt.Errorf("field %q has unsupported type %q", name, jsonType)
		}
		if seen[name] {
			return nil, fmt.Errorf("field %q declared twice", name)
		}
		seen[name] = true
		fields = append(fields, Field{Name: name, JSONType: jsonType, Required: required})
	}
	return fields, nil
}

func newWorkerData(taskType, domain, fieldSpec string) (WorkerData, error) {
	if !taskTypePattern.MatchString(taskType) {
		return WorkerData{}, fmt.Errorf("task type %q must be kebab-case", taskType)
	}
	if domain == "" {
		return WorkerData{}, fmt.Errorf("domain is required")
	}
	fields, err := parseFields(fieldSpec)
	if err != nil {
		return WorkerData{}, err
	}
	return WorkerData{
		TaskType:    taskType,
		PackageName: strings.ReplaceAll(taskType, "-", ""),
		Domain:      domain,
		Fields:      fields,
	}, nil
}

// render executes every template and gofmts the result.
func render(data WorkerData) (map[string][]byte, error) {
	out := make(map[string][]byte, len(templates))
	for filename, tmplStr := range templates {
		tmpl, err := template.New(filename).Parse(tmplStr)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", filename, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("execute template %s: %w", filename, err)
		}

		src, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", filename, err)
		}
		out[filename] = src
	}
	return out, nil
}

func main() {
	taskType := flag.String("name", "", "Task type of the new worker, e.g. compute-protein")
	domain := flag.String("domain", "", "Directory under the workers root, e.g. calories")
	fields := flag.String("fields", "", "Input fields as name:type pairs, e.g. frequencies:array,note:string?")
	outputDir := flag.String("out", "internal/workers", "Workers root directory")
	force := flag.Bool("force", false, "Overwrite an existing worker directory")
	flag.Parse()

	data, err := newWorkerData(*taskType, *domain, *fields)
	if err != nil {
		fmt.Printf("Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	workerDir := filepath.Join(*outputDir, data.Domain, data.TaskType)
	if _, err := os.Stat(workerDir); err == nil && !*force {
		fmt.Printf("Worker directory %s already exists (use -force to overwrite)\n", workerDir)
		os.Exit(1)
	}

	files, err := render(data)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(workerDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(workerDir, name)
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			fmt.Printf("Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Generated %s\n", path)
	}

	fmt.Printf("\n✅ Worker scaffold generated at: %s\n", workerDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Fill in execute and Output in handler.go / models.go\n")
	fmt.Printf("  2. Tighten the schema in validation.go\n")
	fmt.Printf("  3. Register the worker in cmd/worker-manager/main.go\n")
	fmt.Printf("  4. Add a workers.%s entry to configs/config.yaml\n", data.TaskType)
}

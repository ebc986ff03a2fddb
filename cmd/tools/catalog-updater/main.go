// cmd/tools/catalog-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"calorie-workers/internal/nutrition"
	"calorie-workers/pkg/catalogfile"
)

const defaultCatalogPath = "configs/catalog.json"

func main() {
	initCmd := flag.NewFlagSet("init", flag.ExitOnError)
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	initPath := initCmd.String("path", defaultCatalogPath, "Path to catalog file")
	force := initCmd.Bool("force", false, "Overwrite an existing file")

	addPath := addCmd.String("path", defaultCatalogPath, "Path to catalog file")
	addKind := addCmd.String("kind", "", "Table to add to (food, activity)")
	addName := addCmd.String("name", "", "Display name (e.g., Caesar Salad)")
	addCalories := addCmd.Int("calories", -1, "Calories per unit (food) or per hour (activity)")

	updatePath := updateCmd.String("path", defaultCatalogPath, "Path to catalog file")
	updateKind := updateCmd.String("kind", "", "Table to update (food, activity)")
	updateName := updateCmd.String("name", "", "Name of the entry to update")
	field := updateCmd.String("field", "", "Field to update (name, calories)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultCatalogPath, "Path to catalog file")
	listPath := listCmd.String("path", defaultCatalogPath, "Path to catalog file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		initCmd.Parse(os.Args[2:])
		if _, err := os.Stat(*initPath); err == nil && !*force {
			fmt.Printf("Error: %s already exists (use -force to overwrite)\n", *initPath)
			os.Exit(1)
		}
		if err := catalogfile.Save(catalogfile.FromCatalog(nutrition.DefaultCatalog()), *initPath); err != nil {
			fmt.Printf("Error writing catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote built-in catalog to %s\n", *initPath)

	case "add":
		addCmd.Parse(os.Args[2:])
		if *addKind == "" || *addName == "" || *addCalories < 0 {
			fmt.Println("Error: kind, name, and a non-negative calories value are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		err := edit(*addPath, func(f *catalogfile.File) error {
			return f.Add(catalogfile.Kind(*addKind), *addName, *addCalories)
		})
		if err != nil {
			fmt.Printf("Error adding %s: %v\n", *addKind, err)
			os.Exit(1)
		}
		fmt.Printf("Added %s: %s\n", *addKind, *addName)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *updateKind == "" || *updateName == "" || *field == "" || *value == "" {
			fmt.Println("Error: kind, name, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err := edit(*updatePath, func(f *catalogfile.File) error {
			return f.Update(catalogfile.Kind(*updateKind), *updateName, *field, *value)
		})
		if err != nil {
			fmt.Printf("Error updating %s: %v\n", *updateKind, err)
			os.Exit(1)
		}
		fmt.Printf("Updated %s %s, field %s to %s\n", *updateKind, *updateName, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		f, err := catalogfile.Load(*validatePath)
		if err == nil {
			err = f.Validate()
		}
		if err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catalog validation passed. Found %d food items and %d activities.\n", len(f.Foods), len(f.Activities))

	case "list":
		listCmd.Parse(os.Args[2:])
		catalog, err := catalogfile.LoadCatalog(*listPath)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		list(catalog)

	case "help":
		fallthrough
	default:
		help()
	}
}

// edit loads the catalog, applies fn and writes the result back only if it still validates.
func edit(path string, fn func(*catalogfile.File) error) error {
	f, err := catalogfile.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		f = catalogfile.FromCatalog(nutrition.DefaultCatalog())
	}

	if err := fn(f); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	return catalogfile.Save(f, path)
}

func list(catalog nutrition.Catalog) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tFOOD\tCAL/UNIT")
	for i, food := range catalog.Foods {
		fmt.Fprintf(w, "%d\t%s\t%d\n", i, food.Name, food.CaloriesPerUnit)
	}
	fmt.Fprintln(w, "\t\t")
	fmt.Fprintln(w, "INDEX\tACTIVITY\tCAL/HOUR")
	for i, a := range catalog.Activities {
		fmt.Fprintf(w, "%d\t%s\t%d\n", i, a.Name, a.CaloriesPerHour)
	}
	w.Flush()
}

func help() {
	fmt.Print(`
Usage: catalog-updater <command> [flags]

Commands:
  init     Write the built-in catalog to a file
  add      Append a food item or activity
  update   Update an existing entry's field
  validate Validate the catalog file
  list     Print the catalog with selection indexes
  help     Show this help message

Examples:
  catalog-updater init -path configs/catalog.json
  catalog-updater add -kind food -name "Caesar Salad" -calories 180
  catalog-updater update -kind activity -name Dancing -field calories -value 260
  catalog-updater validate -path configs/catalog.json

Entries are only ever appended so existing selection indexes stay valid.
Use 'catalog-updater <command> -h' for more information about a command.
` + "\n")
}

// pkg/catalogfile/catalogfile.go
package catalogfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"calorie-workers/internal/nutrition"
)

const currentVersion = "1.0.0"

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return &f, nil
}

// LoadCatalog returns the built-in catalog when path is empty, otherwise the validated file contents.
func LoadCatalog(path string) (nutrition.Catalog, error) {
	if path == "" {
		return nutrition.DefaultCatalog(), nil
	}
	f, err := Load(path)
	if err != nil {
		return nutrition.Catalog{}, err
	}
	if err := f.Validate(); err != nil {
		return nutrition.Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return f.Catalog(), nil
}

// FromCatalog wraps an in-memory catalog for saving.
func FromCatalog(c nutrition.Catalog) *File {
	c = c.Clone()
	return &File{
		Version:     currentVersion,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Foods:       c.Foods,
		Activities:  c.Activities,
	}
}

func (f *File) Catalog() nutrition.Catalog {
	return nutrition.Catalog{Foods: f.Foods, Activities: f.Activities}.Clone()
}

// Validate applies the catalog rules and rejects duplicate names within a table.
func (f *File) Validate() error {
	if err := f.Catalog().Validate(); err != nil {
		return err
	}

	foods := make(map[string]bool, len(f.Foods))
	for _, food := range f.Foods {
		if foods[food.Name] {
			return fmt.Errorf("duplicate food item: %s", food.Name)
		}
		foods[food.Name] = true
	}

	activities := make(map[string]bool, len(f.Activities))
	for _, a := range f.Activities {
		if activities[a.Name] {
			return fmt.Errorf("duplicate activity: %s", a.Name)
		}
		activities[a.Name] = true
	}
	return nil
}

// Add appends a new entry. Appending keeps existing indexes stable.
func (f *File) Add(kind Kind, name string, calories int) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if calories < 0 {
		return fmt.Errorf("calories must be >= 0")
	}

	switch kind {
	case KindFood:
		for _, food := range f.Foods {
			if food.Name == name {
				return fmt.Errorf("food item %s already exists", name)
			}
		}
		f.Foods = append(f.Foods, nutrition.FoodItem{Name: name, CaloriesPerUnit: calories})
	case KindActivity:
		for _, a := range f.Activities {
			if a.Name == name {
				return fmt.Errorf("activity %s already exists", name)
			}
		}
		f.Activities = append(f.Activities, nutrition.ActivityItem{Name: name, CaloriesPerHour: calories})
	default:
		return fmt.Errorf("unknown kind: %s", kind)
	}

	f.touch()
	return nil
}

// Update changes one field of an existing entry in place. Supported fields are "name" and "calories".
func (f *File) Update(kind Kind, name, field, value string) error {
	idx := f.indexOf(kind, name)
	if idx < 0 {
		return fmt.Errorf("%s %s not found", kind, name)
	}

	switch field {
	case "name":
		if value == "" {
			return fmt.Errorf("name cannot be empty")
		}
		if f.indexOf(kind, value) >= 0 {
			return fmt.Errorf("%s %s already exists", kind, value)
		}
		if kind == KindFood {
			f.Foods[idx].Name = value
		} else {
			f.Activities[idx].Name = value
		}
	case "calories":
		calories, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid calories value: %w", err)
		}
		if calories < 0 {
			return fmt.Errorf("calories must be >= 0")
		}
		if kind == KindFood {
			f.Foods[idx].CaloriesPerUnit = calories
		} else {
			f.Activities[idx].CaloriesPerHour = calories
		}
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	f.touch()
	return nil
}

func (f *File) indexOf(kind Kind, name string) int {
	switch kind {
	case KindFood:
		for i, food := range f.Foods {
			if food.Name == name {
				return i
			}
		}
	case KindActivity:
		for i, a := range f.Activities {
			if a.Name == name {
				return i
			}
		}
	}
	return -1
}

func (f *File) touch() {
	f.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}

// Save writes the catalog as indented JSON, creating parent directories as needed.
func Save(f *File, path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

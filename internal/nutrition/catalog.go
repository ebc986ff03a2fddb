package nutrition

import "fmt"

// FoodItem is one row of the intake catalog.
type FoodItem struct {
	Name            string `json:"name"`
	CaloriesPerUnit int    `json:"caloriesPerUnit"`
}

// ActivityItem is one row of the activity catalog. The rate is per 60 minutes.
type ActivityItem struct {
	Name            string `json:"name"`
	CaloriesPerHour int    `json:"caloriesPerHour"`
}

// Catalog pairs the food and activity tables. Index position is the identity of an item,
// so a Catalog must not be reordered once selections have been built against it.
type Catalog struct {
	Foods      []FoodItem     `json:"foods"`
	Activities []ActivityItem `json:"activities"`
}

var defaultFoods = []FoodItem{
	{Name: "French Fries", CaloriesPerUnit: 365},
	{Name: "Hamburgers", CaloriesPerUnit: 354},
	{Name: "Mashed Potatoes", CaloriesPerUnit: 214},
	{Name: "Grilled Cheese", CaloriesPerUnit: 378},
	{Name: "Steak and Baked Potatoes", CaloriesPerUnit: 161},
	{Name: "Cheese Burger", CaloriesPerUnit: 303},
	{Name: "Fried Chicken", CaloriesPerUnit: 320},
	{Name: "Hash Browns", CaloriesPerUnit: 470},
	{Name: "Steak and Fries", CaloriesPerUnit: 365},
	{Name: "Corn and Cob", CaloriesPerUnit: 155},
}

var defaultActivities = []ActivityItem{
	{Name: "Running/Jogging", CaloriesPerHour: 700},
	{Name: "Cycling", CaloriesPerHour: 300},
	{Name: "Swimming", CaloriesPerHour: 272},
	{Name: "Jump Rope", CaloriesPerHour: 1074},
	{Name: "High-Intensity Interval Training", CaloriesPerHour: 1000},
	{Name: "Rowing", CaloriesPerHour: 575},
	{Name: "Dancing", CaloriesPerHour: 250},
	{Name: "Strength Training", CaloriesPerHour: 250},
	{Name: "Hiking", CaloriesPerHour: 400},
	{Name: "Group Fitness Classes", CaloriesPerHour: 500},
}

// DefaultCatalog returns a fresh copy of the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Foods:      DefaultFoods(),
		Activities: DefaultActivities(),
	}
}

// DefaultFoods returns a copy of the built-in food table.
func DefaultFoods() []FoodItem {
	out := make([]FoodItem, len(defaultFoods))
	copy(out, defaultFoods)
	return out
}

// DefaultActivities returns a copy of the built-in activity table.
func DefaultActivities() []ActivityItem {
	out := make([]ActivityItem, len(defaultActivities))
	copy(out, defaultActivities)
	return out
}

// Validate checks that every entry has a name and a non-negative rate.
func (c Catalog) Validate() error {
	if len(c.Foods) == 0 {
		return fmt.Errorf("catalog has no food items")
	}
	if len(c.Activities) == 0 {
		return fmt.Errorf("catalog has no activities")
	}
	for i, f := range c.Foods {
		if f.Name == "" {
			return fmt.Errorf("food item %d: name is required", i)
		}
		if f.CaloriesPerUnit < 0 {
			return fmt.Errorf("food item %q: caloriesPerUnit must be >= 0", f.Name)
		}
	}
	for i, a := range c.Activities {
		if a.Name == "" {
			return fmt.Errorf("activity %d: name is required", i)
		}
		if a.CaloriesPerHour < 0 {
			return fmt.Errorf("activity %q: caloriesPerHour must be >= 0", a.Name)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can hand the catalog out without sharing backing arrays.
func (c Catalog) Clone() Catalog {
	foods := make([]FoodItem, len(c.Foods))
	copy(foods, c.Foods)
	activities := make([]ActivityItem, len(c.Activities))
	copy(activities, c.Activities)
	return Catalog{Foods: foods, Activities: activities}
}

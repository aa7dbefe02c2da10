package models

import "time"

type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
)

func (m Meal) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// WorkingHour is a meal tagged half-open block of the day, From and To in "HH:mm".
type WorkingHour struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	CanteenID string `json:"-" gorm:"index"`
	Meal      Meal   `json:"meal"`
	From      string `json:"from" example:"11:00"`
	To        string `json:"to" example:"15:00"`
}

type Canteen struct {
	ID           string        `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name"`
	Location     string        `json:"location"`
	Capacity     int           `json:"capacity"`
	WorkingHours []WorkingHour `json:"workingHours" gorm:"foreignKey:CanteenID"`
	CreatedAt    time.Time     `json:"-"`
}

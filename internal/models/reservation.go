package models

import "time"

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "Active"
	ReservationCancelled ReservationStatus = "Cancelled"
)

type Reservation struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	StudentID string            `json:"studentId" gorm:"index"`
	CanteenID string            `json:"canteenId" gorm:"index"`
	Date      string            `json:"date" example:"2025-12-05"`
	Time      string            `json:"time" example:"11:00"`
	Duration  int               `json:"duration" enum:"30,60"`
	Status    ReservationStatus `json:"status" gorm:"index" enum:"Active,Cancelled"`
	CreatedAt time.Time         `json:"-"`
}

func (r Reservation) Active() bool {
	return r.Status == ReservationActive
}

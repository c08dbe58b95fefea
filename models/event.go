package models

import "time"

// Event is a hackathon or coding contest listed on the site.
type Event struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name" binding:"required"`
	Type        string    `bson:"type" json:"type" binding:"required"`
	Date        time.Time `bson:"date" json:"date" binding:"required"`
	Duration    string    `bson:"duration" json:"duration" binding:"required"`
	Location    string    `bson:"location" json:"location" binding:"required"`
	Tags        []string  `bson:"tags" json:"tags"`
	TeamSize    string    `bson:"teamSize,omitempty" json:"teamSize,omitempty"`
	Difficulty  string    `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Description string    `bson:"description" json:"description" binding:"required"`
	Organizer   string    `bson:"organizer" json:"organizer" binding:"required"`
	Website     string    `bson:"website" json:"website" binding:"required"`
	Prizes      string    `bson:"prizes" json:"prizes" binding:"required"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

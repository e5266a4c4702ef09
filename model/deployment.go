package model

import "time"

type Deployment struct {
	DTO
	DeploymentID  string     `gorm:"uniqueIndex;size:40" json:"deploymentId"`
	RestaurantID  uint       `gorm:"index" json:"restaurantId"`
	Slug          string     `json:"slug"`
	Status        string     `json:"status"`
	URL           string     `json:"url"`
	FailureReason string     `json:"failureReason,omitempty"`
	StartedAt     time.Time  `json:"startedAt"`
	FinishedAt    *time.Time `json:"finishedAt"`
}

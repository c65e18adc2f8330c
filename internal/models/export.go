package models

import "time"

// ExportRecord is one entry of an employee's export history
type ExportRecord struct {
	TaskID     string       `bson:"_id" json:"taskId"`
	UserID     string       `bson:"userId" json:"userId"`
	StartDate  string       `bson:"startDate" json:"startDate"`
	EndDate    string       `bson:"endDate" json:"endDate"`
	Format     ExportFormat `bson:"format" json:"format"`
	Filename   string       `bson:"filename" json:"filename"`
	StorageKey string       `bson:"storageKey" json:"storageKey"`
	URL        string       `bson:"url,omitempty" json:"url,omitempty"`
	Rows       int          `bson:"rows" json:"rows"`
	Total      string       `bson:"total" json:"total"`
	Size       int          `bson:"size" json:"size"`
	ContentKey string       `bson:"contentKey" json:"-"` // digest of the inputs that produced the artifact
	CreatedAt  time.Time    `bson:"createdAt" json:"createdAt"`
}

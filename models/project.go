package models

// Entry is a single key/value row of the local key-value table.
// The store keeps each entity collection as one JSON document under its own key.
type Entry struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"unique;not null" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// TableName pins the table name used by the SQLite medium
func (Entry) TableName() string {
	return "entries"
}

// Project represents a customer engagement that owns a series of weekly reports
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CustomerName string `json:"customerName"`
	LogoURL      string `json:"logoUrl,omitempty"` // data: URL, never a network reference
	CreatedAt    string `json:"createdAt"`
}

// HasLogo reports whether the project carries an embedded logo
func (p Project) HasLogo() bool {
	return p.LogoURL != ""
}

package models

// Challenge represents one catalog entry with its secret flag
type Challenge struct {
	ID          string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Level       int    `gorm:"type:integer;unique;not null" json:"level"`
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Hint        string `gorm:"type:text" json:"hint,omitempty"`
	Flag        string `gorm:"type:varchar(255);not null" json:"-"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	Difficulty  string `gorm:"type:varchar(50)" json:"difficulty"`
	Category    string `gorm:"type:varchar(50)" json:"category"`
	Points      int    `gorm:"type:integer;not null;default:0" json:"points"`
	SolveCount  int    `gorm:"type:integer;not null;default:0" json:"solve_count"`
}

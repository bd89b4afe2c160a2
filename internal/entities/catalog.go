package entities

import (
	"fmt"
	"time"
)

// displayDateLayout matches the medium date style used across the catalog pages.
const displayDateLayout = "Jan 2, 2006"

const isoDateLayout = "2006-01-02"

type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "Available"
	StatusMaintenance InstanceStatus = "Maintenance"
	StatusLoaned      InstanceStatus = "Loaned"
	StatusReserved    InstanceStatus = "Reserved"
)

// InstanceStatuses lists every loan state a copy can be in, in the order
// the status select renders them.
var InstanceStatuses = []InstanceStatus{
	StatusMaintenance,
	StatusAvailable,
	StatusLoaned,
	StatusReserved,
}

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Name returns the "family, first" display form, or empty when either
// part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

func (a Author) URL() string {
	return fmt.Sprintf("/catalog/author/%d", a.ID)
}

// Lifespan renders "birth - death" with either side blank when unknown.
func (a Author) Lifespan() string {
	return formatDate(a.DateOfBirth) + " - " + formatDate(a.DateOfDeath)
}

// DateOfBirthISO is the form-input representation of the birth date.
func (a Author) DateOfBirthISO() string {
	return isoDate(a.DateOfBirth)
}

// DateOfDeathISO is the form-input representation of the death date.
func (a Author) DateOfDeathISO() string {
	return isoDate(a.DateOfDeath)
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	Books     []Book    `gorm:"many2many:book_genres;" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g Genre) URL() string {
	return fmt.Sprintf("/catalog/genre/%d", g.ID)
}

type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"index;size:512" json:"title"`
	AuthorID  uint           `gorm:"index" json:"author_id"`
	Author    Author         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary   string         `gorm:"type:text" json:"summary"`
	ISBN      string         `gorm:"index;size:20" json:"isbn"`
	Genres    []Genre        `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	Instances []BookInstance `gorm:"foreignKey:BookID" json:"instances,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (b Book) URL() string {
	return fmt.Sprintf("/catalog/book/%d", b.ID)
}

type BookInstance struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	BookID    uint           `gorm:"index" json:"book_id"`
	Book      Book           `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint   string         `gorm:"size:256" json:"imprint"`
	Status    InstanceStatus `gorm:"size:20;default:'Maintenance'" json:"status"`
	DueBack   time.Time      `json:"due_back"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (bi BookInstance) URL() string {
	return fmt.Sprintf("/catalog/bookinstance/%d", bi.ID)
}

func (bi BookInstance) IsAvailable() bool {
	return bi.Status == StatusAvailable
}

// DueBackFormatted is the display form of the due date.
func (bi BookInstance) DueBackFormatted() string {
	return bi.DueBack.Format(displayDateLayout)
}

// DueBackISO is the form-input representation of the due date.
func (bi BookInstance) DueBackISO() string {
	return bi.DueBack.Format(isoDateLayout)
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(displayDateLayout)
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(isoDateLayout)
}

package model

// PosCode position-code lookup (table pos_codes). Seeded by migration, read-only.
type PosCode struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(100);not null"     json:"name"`
}

// TableName table name
func (PosCode) TableName() string { return "pos_codes" }

// DefaultPosCodes seed rows, also used by tests and the sqlite bootstrap.
func DefaultPosCodes() []PosCode {
	return []PosCode{
		{ID: 1, Name: "รอง ผบ.ตร."},
		{ID: 2, Name: "ผู้ช่วย"},
		{ID: 3, Name: "ผบช."},
		{ID: 4, Name: "รอง ผบช."},
		{ID: 6, Name: "ผบก."},
		{ID: 7, Name: "รอง ผบก."},
		{ID: 8, Name: "ผกก."},
		{ID: 9, Name: "รอง ผกก."},
		{ID: 11, Name: "สว."},
		{ID: 12, Name: "รอง สว."},
	}
}

package models

import "time"

// ProductImage describes an attached image stored in the object store.
// FilePath is the public URL of the uploaded object.
type ProductImage struct {
	FileName  string `json:"fileName"`
	FilePath  string `json:"filePath"`
	FileType  string `json:"fileType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Product is an inventory record owned by a single user. Price is kept as
// decimal text; quantities are whole units.
type Product struct {
	ID          string
	UserID      string
	Name        string
	SKU         string
	Category    string
	Quantity    int64
	Price       string
	Description string
	Image       ProductImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

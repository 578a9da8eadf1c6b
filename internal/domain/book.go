package domain

import (
	"time"

	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
)

// Book is a catalog entry (table buku)
type Book struct {
	ID           int64     `json:"id_buku" db:"id_buku"`
	Title        string    `json:"judul" db:"judul"`
	Author       string    `json:"penulis" db:"penulis"`
	Publisher    *string   `json:"penerbit,omitempty" db:"penerbit"`
	Year         *int      `json:"tahun_terbit,omitempty" db:"tahun_terbit"`
	ISBN         *string   `json:"isbn,omitempty" db:"isbn"`
	CategoryID   *int64    `json:"id_kategori,omitempty" db:"id_kategori"`
	CategoryName *string   `json:"nama_kategori,omitempty" db:"nama_kategori"`
	Stock        int       `json:"stok" db:"stok"`
	Shelf        *string   `json:"lokasi_rak,omitempty" db:"lokasi_rak"`
	Cover        *string   `json:"gambar,omitempty" db:"gambar"`
	Description  *string   `json:"deskripsi,omitempty" db:"deskripsi"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	pagination.Counted
}

// Category groups books (table kategori)
type Category struct {
	ID   int64  `json:"id_kategori" db:"id_kategori"`
	Name string `json:"nama_kategori" db:"nama_kategori"`
}

type CategoryRequest struct {
	Name string `json:"nama_kategori" validate:"required,max=100"`
}

// BookForm is either CreateBook or EditBook.
type BookForm interface {
	isBookForm()
}

type CreateBook struct {
	Title       string  `json:"judul" validate:"required,max=255"`
	Author      string  `json:"penulis" validate:"required,max=255"`
	Publisher   *string `json:"penerbit" validate:"omitempty,max=255"`
	Year        *int    `json:"tahun_terbit" validate:"omitempty,gte=1000,lte=9999"`
	ISBN        *string `json:"isbn" validate:"omitempty,max=20"`
	CategoryID  int64   `json:"id_kategori" validate:"required,gt=0"`
	Stock       int     `json:"stok" validate:"gte=0"`
	Shelf       *string `json:"lokasi_rak" validate:"omitempty,max=50"`
	Cover       *string `json:"gambar" validate:"omitempty,max=500"`
	Description *string `json:"deskripsi"`
}

// EditBook changes only the fields that are set.
type EditBook struct {
	ID          int64   `json:"-" validate:"required,gt=0"`
	Title       *string `json:"judul" validate:"omitempty,min=1,max=255"`
	Author      *string `json:"penulis" validate:"omitempty,min=1,max=255"`
	Publisher   *string `json:"penerbit" validate:"omitempty,max=255"`
	Year        *int    `json:"tahun_terbit" validate:"omitempty,gte=1000,lte=9999"`
	ISBN        *string `json:"isbn" validate:"omitempty,max=20"`
	CategoryID  *int64  `json:"id_kategori" validate:"omitempty,gt=0"`
	Stock       *int    `json:"stok" validate:"omitempty,gte=0"`
	Shelf       *string `json:"lokasi_rak" validate:"omitempty,max=50"`
	Cover       *string `json:"gambar" validate:"omitempty,max=500"`
	Description *string `json:"deskripsi"`
}

func (CreateBook) isBookForm() {}
func (EditBook) isBookForm()   {}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

// CatalogService manages books and categories.
type CatalogService struct {
	books    repository.BookRepository
	audit    auditor
	pageSize int
	maxPage  int
}

func NewCatalogService(books repository.BookRepository, admins repository.AdminRepository, cfg *config.Config, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		books:    books,
		audit:    auditor{admins: admins, logger: logger},
		pageSize: cfg.Business.DefaultPageSize,
		maxPage:  cfg.Business.MaxPageSize,
	}
}

// Save creates or edits a book from the admin form.
func (s *CatalogService) Save(ctx context.Context, actor domain.Actor, form domain.BookForm) (*domain.Book, error) {
	switch f := form.(type) {
	case domain.CreateBook:
		book := &domain.Book{
			Title:       f.Title,
			Author:      f.Author,
			Publisher:   f.Publisher,
			Year:        f.Year,
			ISBN:        f.ISBN,
			CategoryID:  &f.CategoryID,
			Stock:       f.Stock,
			Shelf:       f.Shelf,
			Cover:       f.Cover,
			Description: f.Description,
		}
		if err := s.books.Create(ctx, book); err != nil {
			return nil, err
		}
		s.audit.record(ctx, actor, "create_book", fmt.Sprintf("buku %d: %q", book.ID, book.Title))
		return s.books.GetByID(ctx, book.ID)

	case domain.EditBook:
		book, err := s.books.GetByID(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		applyBookEdit(book, f)
		if err := s.books.Update(ctx, book); err != nil {
			return nil, err
		}
		s.audit.record(ctx, actor, "update_book", fmt.Sprintf("buku %d: %q", book.ID, book.Title))
		return s.books.GetByID(ctx, f.ID)

	default:
		return nil, customError.WrapValidation(fmt.Errorf("unsupported book form %T", form))
	}
}

func (s *CatalogService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "delete_book", fmt.Sprintf("buku %d: %q", id, book.Title))
	return nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, q pagination.Query) (*pagination.Page[domain.Book], error) {
	return s.books.List(ctx, q.Normalize(s.pageSize, s.maxPage))
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.books.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor domain.Actor, req domain.CategoryRequest) (*domain.Category, error) {
	category := &domain.Category{Name: req.Name}
	if err := s.books.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "create_category", fmt.Sprintf("kategori %d: %q", category.ID, category.Name))
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.books.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "delete_category", fmt.Sprintf("kategori %d", id))
	return nil
}

func applyBookEdit(book *domain.Book, f domain.EditBook) {
	if f.Title != nil {
		book.Title = *f.Title
	}
	if f.Author != nil {
		book.Author = *f.Author
	}
	if f.Publisher != nil {
		book.Publisher = f.Publisher
	}
	if f.Year != nil {
		book.Year = f.Year
	}
	if f.ISBN != nil {
		book.ISBN = f.ISBN
	}
	if f.CategoryID != nil {
		book.CategoryID = f.CategoryID
	}
	if f.Stock != nil {
		book.Stock = *f.Stock
	}
	if f.Shelf != nil {
		book.Shelf = f.Shelf
	}
	if f.Cover != nil {
		book.Cover = f.Cover
	}
	if f.Description != nil {
		book.Description = f.Description
	}
}

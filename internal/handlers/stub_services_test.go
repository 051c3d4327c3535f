package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/platform/mediastore"
	"github.com/azadstore/storefront/internal/services"
)

var errStub = errors.New("stub failure")

type stubCatalogService struct {
	catalog    services.Catalog
	fetchErr   error
	replaceErr error
	replaced   *services.Catalog

	addCmd     *services.AddProductCommand
	addErr     error
	updateCmd  *services.UpdateProductCommand
	updateErr  error
	deletedID  string
	deleteErr  error
	addProduct services.Product
}

func (s *stubCatalogService) Fetch(context.Context) (services.Catalog, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.catalog, nil
}

func (s *stubCatalogService) Replace(_ context.Context, catalog services.Catalog) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = &catalog
	return nil
}

func (s *stubCatalogService) AddProduct(_ context.Context, cmd services.AddProductCommand) (services.Product, error) {
	s.addCmd = &cmd
	if s.addErr != nil {
		return services.Product{}, s.addErr
	}
	return s.addProduct, nil
}

func (s *stubCatalogService) UpdateProduct(_ context.Context, cmd services.UpdateProductCommand) (services.Product, error) {
	s.updateCmd = &cmd
	if s.updateErr != nil {
		return services.Product{}, s.updateErr
	}
	return services.Product{Name: "updated"}, nil
}

func (s *stubCatalogService) DeleteProduct(_ context.Context, productID string) error {
	s.deletedID = productID
	return s.deleteErr
}

type stubReviewService struct {
	reviews   []services.Review
	listErr   error
	created   *services.CreateReviewCommand
	createErr error
	updatedID domain.ID
	patch     map[string]any
	updateErr error
	deletedID domain.ID
	removed   int
	deleteErr error
}

func (s *stubReviewService) List(context.Context) ([]services.Review, error) {
	return s.reviews, s.listErr
}

func (s *stubReviewService) Create(_ context.Context, cmd services.CreateReviewCommand) (services.Review, error) {
	s.created = &cmd
	if s.createErr != nil {
		return services.Review{}, s.createErr
	}
	return services.Review{ID: "server-id", Name: cmd.Name, Rating: cmd.Rating, Text: cmd.Text}, nil
}

func (s *stubReviewService) Update(_ context.Context, id domain.ID, patch map[string]any) (services.Review, error) {
	s.updatedID = id
	s.patch = patch
	if s.updateErr != nil {
		return services.Review{}, s.updateErr
	}
	return services.Review{ID: id}, nil
}

func (s *stubReviewService) Delete(_ context.Context, id domain.ID) (int, error) {
	s.deletedID = id
	return s.removed, s.deleteErr
}

type stubOrderService struct {
	orders    []services.Order
	listErr   error
	created   *services.Order
	createErr error
}

func (s *stubOrderService) List(context.Context) ([]services.Order, error) {
	return s.orders, s.listErr
}

func (s *stubOrderService) Create(_ context.Context, order services.Order) (services.Order, error) {
	s.created = &order
	if s.createErr != nil {
		return services.Order{}, s.createErr
	}
	if order.ID.IsZero() {
		order.ID = "generated-id"
	}
	return order, nil
}

type stubAuthService struct {
	loginErr  error
	changeErr error
	changed   *services.ChangePasswordCommand
	username  string
	password  string
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (string, error) {
	s.username = username
	s.password = password
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return services.StaticToken, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, cmd services.ChangePasswordCommand) error {
	s.changed = &cmd
	return s.changeErr
}

type stubMediaSaver struct {
	saved   mediastore.SavedMedia
	saveErr error
	calls   int
}

func (s *stubMediaSaver) Save(contentType, originalName string, r io.Reader) (mediastore.SavedMedia, error) {
	s.calls++
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	if s.saveErr != nil {
		return mediastore.SavedMedia{}, s.saveErr
	}
	return s.saved, nil
}

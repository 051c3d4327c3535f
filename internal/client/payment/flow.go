// Package payment implements the payment modal state machine:
// closed → open(method, product id?) → submitted. The open state is persisted
// so a reload lands the user back on the same screen.
package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/client/state"
	"github.com/azadstore/storefront/internal/domain"
)

// unavailableMethods are terminal dead-ends: the modal opens with a fixed
// notice and package selection stays hidden.
var unavailableMethods = map[string]bool{
	"zaad":   true,
	"paypal": true,
	"bank":   true,
}

const unavailableNotice = "This payment method is not available yet. Please use EVC-Plus."

// fallbackPackages backs the package selector when the product carries no
// packages of its own.
var fallbackPackages = map[string][]domain.Package{
	"uc": {
		{Qty: "600 UC", Price: "$10"},
		{Qty: "1500 UC", Price: "$20"},
		{Qty: "3000 UC", Price: "$35"},
		{Qty: "6000 UC", Price: "$60"},
	},
	"coins": {
		{Qty: "500 Coins", Price: "$8"},
		{Qty: "1000 Coins", Price: "$15"},
		{Qty: "2500 Coins", Price: "$30"},
		{Qty: "5000 Coins", Price: "$50"},
	},
}

// Catalog is the read side the flow validates product ids against.
// *catalog.Store satisfies it.
type Catalog interface {
	Get(id string) (domain.Product, bool)
	ValidIDs() []string
}

// OrderRecorder records the order produced by a successful submit.
// *orders.Recorder satisfies it.
type OrderRecorder interface {
	Record(ctx context.Context, order domain.Order) (domain.Order, error)
}

// Gate receives the pending messaging text and contact for the follow
// interstitial; the external link opens only after the gate completes.
type Gate interface {
	Trigger(phone, text string)
}

// View is the render-ready modal state.
type View struct {
	Open            bool
	Method          string
	Unavailable     bool
	Notice          string
	ProductID       string
	Preview         *domain.Product
	ShowPackages    bool
	Packages        []domain.Package
	SelectedPackage string
	InputInvalid    bool
	InlineError     string
	Message         string
}

type persistedState struct {
	ModalOpen      bool   `json:"modalOpen"`
	SelectedMethod string `json:"selectedMethod"`
	ProjectID      string `json:"projectId"`
	Package        string `json:"package,omitempty"`
}

// Flow is the payment modal state machine.
type Flow struct {
	store    *state.Store
	catalog  Catalog
	recorder OrderRecorder
	gate     Gate
	phone    string
	clock    func() time.Time
	logger   *zap.Logger

	view View
}

// FlowDeps bundles constructor inputs for the payment flow.
type FlowDeps struct {
	Store        *state.Store
	Catalog      Catalog
	Recorder     OrderRecorder
	Gate         Gate
	ContactPhone string
	Clock        func() time.Time
	Logger       *zap.Logger
}

// NewFlow constructs the payment flow in the closed state.
func NewFlow(deps FlowDeps) (*Flow, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("payment: state store is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("payment: catalog is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		store:    deps.Store,
		catalog:  deps.Catalog,
		recorder: deps.Recorder,
		gate:     deps.Gate,
		phone:    deps.ContactPhone,
		clock:    clock,
		logger:   logger,
	}, nil
}

// View returns the current modal state.
func (f *Flow) View() View {
	return f.view
}

// Open enters the open state for the chosen method. The unavailable methods
// show their fixed notice and hide package selection; nothing else happens
// until the modal is closed again.
func (f *Flow) Open(method, productID string) {
	f.view = View{Open: true, Method: method}
	if unavailableMethods[method] {
		f.view.Unavailable = true
		f.view.Notice = unavailableNotice
		f.persist()
		return
	}
	f.persist()
	if productID != "" {
		f.EnterProductID(productID)
	}
}

// EnterProductID validates the typed id against the catalog. A match shows
// the preview; the package selector appears only for uc/coins products.
func (f *Flow) EnterProductID(id string) {
	if !f.view.Open || f.view.Unavailable {
		return
	}
	id = strings.TrimSpace(id)
	f.view.ProductID = id
	f.view.InputInvalid = false
	f.view.InlineError = ""

	product, ok := f.catalog.Get(id)
	if !ok {
		f.view.Preview = nil
		f.view.ShowPackages = false
		f.view.Packages = nil
		return
	}

	f.view.Preview = &product
	category := strings.ToLower(strings.TrimSpace(product.Category))
	if category == "uc" || category == "coins" {
		f.view.ShowPackages = true
		if len(product.Packages) > 0 {
			f.view.Packages = product.Packages
		} else {
			f.view.Packages = fallbackPackages[category]
		}
	} else {
		f.view.ShowPackages = false
		f.view.Packages = nil
		f.view.SelectedPackage = ""
	}
	f.persist()
}

// SelectPackage records the chosen tier and persists it for restoration.
func (f *Flow) SelectPackage(pkg domain.Package) {
	if !f.view.ShowPackages {
		return
	}
	f.view.SelectedPackage = pkg.Qty + "||" + pkg.Price
	f.persist()
}

// Submit requires the typed id to exist in the catalog. On failure the modal
// stays open, the input is marked invalid, and the inline error lists every
// valid id; no order is created. On success the order is recorded, the follow
// gate is triggered with the request message, and the persisted modal state
// is cleared.
func (f *Flow) Submit(ctx context.Context) bool {
	if !f.view.Open || f.view.Unavailable {
		return false
	}

	id := f.view.ProductID
	product, ok := f.catalog.Get(id)
	if !ok {
		f.view.InputInvalid = true
		f.view.InlineError = "Unknown ID! Please choose one of: " + strings.Join(f.catalog.ValidIDs(), ", ")
		return false
	}

	name := product.Name
	if name == "" {
		name = "Unknown"
	}
	packageText := ""
	if f.view.SelectedPackage != "" {
		if qty, price, found := strings.Cut(f.view.SelectedPackage, "||"); found {
			packageText = fmt.Sprintf(" - Package: %s (%s)", qty, price)
		}
	}
	message := fmt.Sprintf("Dear ASAD! Waxaan u baahanahay account ID %s (%s)%s", id, name, packageText)

	price := product.Price
	if price == "" {
		price = "N/A"
	}
	if f.recorder != nil {
		order := domain.Order{
			Items: []domain.OrderItem{{ProductID: domain.ID(id), Name: name + packageText, Price: price, Qty: 1}},
			Total: price,
		}
		if _, err := f.recorder.Record(ctx, order); err != nil {
			f.logger.Warn("payment order record failed", zap.Error(err))
		}
	}

	if f.gate != nil {
		f.gate.Trigger(f.phone, message)
	}

	f.view = View{Message: message}
	f.clearState()
	return true
}

// Close leaves the flow and discards the persisted session.
func (f *Flow) Close() {
	f.view = View{}
	f.clearState()
}

// Restore re-opens a mid-flow session from the persisted state: same method,
// and the product-id handler re-runs so preview and package selection come
// back. Called once at startup.
func (f *Flow) Restore() {
	var saved persistedState
	if !f.store.Get(state.KeyPayment, &saved) || !saved.ModalOpen {
		return
	}
	f.Open(saved.SelectedMethod, saved.ProjectID)
	if saved.Package != "" && f.view.ShowPackages {
		f.view.SelectedPackage = saved.Package
		f.persist()
	}
}

func (f *Flow) persist() {
	saved := persistedState{
		ModalOpen:      f.view.Open,
		SelectedMethod: f.view.Method,
		ProjectID:      f.view.ProductID,
		Package:        f.view.SelectedPackage,
	}
	if err := f.store.Put(state.KeyPayment, saved); err != nil {
		f.logger.Warn("payment state persist failed", zap.Error(err))
	}
}

func (f *Flow) clearState() {
	if err := f.store.Delete(state.KeyPayment); err != nil {
		f.logger.Warn("payment state clear failed", zap.Error(err))
	}
}

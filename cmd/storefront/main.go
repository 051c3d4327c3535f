// Command storefront is a terminal client over the storefront API: it loads
// the catalog (scraping a saved page when the server is down), keeps the
// local cart/review/order state, prints the rendered views, and can place a
// purchase request through the payment flow and follow gate.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/client/apiclient"
	"github.com/azadstore/storefront/internal/client/catalog"
	"github.com/azadstore/storefront/internal/client/i18n"
	"github.com/azadstore/storefront/internal/client/interstitial"
	"github.com/azadstore/storefront/internal/client/orders"
	"github.com/azadstore/storefront/internal/client/payment"
	"github.com/azadstore/storefront/internal/client/reviews"
	"github.com/azadstore/storefront/internal/client/schedule"
	"github.com/azadstore/storefront/internal/client/state"
	"github.com/azadstore/storefront/internal/client/view"
	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/platform/config"
	"github.com/azadstore/storefront/internal/platform/observability"
)

func main() {
	fallbackPage := flag.String("fallback-page", "", "saved storefront page used when the catalog fetch fails")
	showReviews := flag.Bool("reviews", false, "refresh reviews and print per-product averages")
	buyID := flag.String("buy", "", "product id to request via EVC-Plus")
	buyPackage := flag.String("package", "", "package tier for -buy, as qty||price")
	flag.Parse()

	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	api, err := apiclient.New(cfg.Client.BaseURL, nil)
	if err != nil {
		logger.Fatal("failed to initialise api client", zap.Error(err))
	}

	store, err := state.NewStore(cfg.Client.StateDir, logger)
	if err != nil {
		logger.Fatal("failed to initialise local state", zap.Error(err))
	}

	var fallback catalog.DocumentSource
	if *fallbackPage != "" {
		page := *fallbackPage
		fallback = func() (io.Reader, error) { return os.Open(page) }
	}

	catalogStore, err := catalog.NewStore(api, fallback, logger)
	if err != nil {
		logger.Fatal("failed to initialise catalog store", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prefs, err := i18n.NewPreferences(store)
	if err != nil {
		logger.Fatal("failed to initialise preferences", zap.Error(err))
	}

	fmt.Printf("Azad Store [%s]\n", prefs.Language(cfg.Store.DefaultLanguage))

	catalogStore.Load(ctx)
	printCatalog(catalogStore, cfg.Store.MainSlots, prefs.Autoplay(), logger)

	if *showReviews {
		printAverages(ctx, store, api, logger)
	}

	if *buyID != "" {
		runPurchase(ctx, cfg, store, api, catalogStore, *buyID, *buyPackage, logger)
	}
}

func printCatalog(store *catalog.Store, mainSlots []string, autoplay bool, logger *zap.Logger) {
	snapshot := store.All()

	featured := view.Featured(snapshot)
	if featured.EmptyMessage != "" {
		fmt.Println(featured.EmptyMessage)
	} else {
		fmt.Println("Featured:")
		for _, card := range featured.Cards {
			fmt.Printf("  [%s] %s — %s\n", card.ID, card.Name, card.Price)
		}
	}

	fmt.Println("Main grid:")
	for _, card := range view.MainGrid(snapshot, mainSlots, logger) {
		line := fmt.Sprintf("  [%s] %s — %s", card.ID, card.Name, card.Price)
		if card.MediaKind == view.MediaKindVideo {
			line += " (video)"
		}
		fmt.Println(line)
	}

	gallery := view.Gallery(snapshot, autoplay)
	fmt.Printf("Gallery: %d entries\n", len(gallery))
	for _, entry := range gallery {
		line := fmt.Sprintf("  [%s] %s (%s)", entry.Card.ID, entry.Card.Name, entry.Tag)
		if entry.Autoplay {
			line += " [autoplay]"
		}
		fmt.Println(line)
	}
}

// terminalLinks prints external links instead of opening a browser; the done
// channel lets the purchase flow wait for the gate to release the message.
type terminalLinks struct {
	done chan struct{}
}

func (l *terminalLinks) Open(phone, text string) error {
	fmt.Printf("Open: https://wa.me/%s?text=%s\n", phone, url.QueryEscape(text))
	close(l.done)
	return nil
}

func (l *terminalLinks) OpenURL(page string) error {
	fmt.Printf("Open: %s\n", page)
	return nil
}

func runPurchase(ctx context.Context, cfg *config.Config, store *state.Store, api *apiclient.Client, catalogStore *catalog.Store, productID, pkg string, logger *zap.Logger) {
	recorder, err := orders.NewRecorder(store, api, nil, logger)
	if err != nil {
		logger.Fatal("failed to initialise order recorder", zap.Error(err))
	}

	links := &terminalLinks{done: make(chan struct{})}
	gate, err := interstitial.NewGate(interstitial.GateDeps{
		Clock:            schedule.RealClock{},
		Links:            links,
		Pages:            links,
		FollowPageURL:    cfg.Store.FollowPageURL,
		CountdownSeconds: cfg.Store.CountdownSeconds,
		ConfirmSeconds:   cfg.Store.ConfirmSeconds,
		Logger:           logger,
	})
	if err != nil {
		logger.Fatal("failed to initialise follow gate", zap.Error(err))
	}

	flow, err := payment.NewFlow(payment.FlowDeps{
		Store:        store,
		Catalog:      catalogStore,
		Recorder:     recorder,
		Gate:         gate,
		ContactPhone: cfg.Store.ContactPhone,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("failed to initialise payment flow", zap.Error(err))
	}

	flow.Open("evc", productID)
	if pkg != "" {
		if qty, price, found := strings.Cut(pkg, "||"); found {
			flow.SelectPackage(domain.Package{Qty: qty, Price: price})
		}
	}
	if !flow.Submit(ctx) {
		fmt.Println(flow.View().InlineError)
		return
	}
	fmt.Println(flow.View().Message)

	fmt.Printf("Follow %s to continue in %d seconds.\n", cfg.Store.FollowPageURL, cfg.Store.CountdownSeconds)
	gate.Follow()
	select {
	case <-links.done:
	case <-time.After(time.Duration(cfg.Store.CountdownSeconds+5) * time.Second):
		logger.Warn("follow gate never completed")
		return
	}
	time.Sleep(time.Duration(cfg.Store.ConfirmSeconds) * time.Second)
	fmt.Println("Thank you! Your request has been sent.")
}

func printAverages(ctx context.Context, store *state.Store, api *apiclient.Client, logger *zap.Logger) {
	manager, err := reviews.NewManager(store, api, nil, logger)
	if err != nil {
		logger.Fatal("failed to initialise review manager", zap.Error(err))
	}
	if err := manager.Refresh(ctx); err != nil {
		logger.Warn("review refresh failed, printing local history", zap.Error(err))
	}

	averages := manager.Averages()
	if len(averages) == 0 {
		fmt.Println("No product reviews yet.")
		return
	}
	fmt.Println("Ratings:")
	for productID, avg := range averages {
		fmt.Printf("  %s: %.1f %s (%d reviews)\n", productID, avg.Mean, avg.Stars, avg.Count)
	}
}

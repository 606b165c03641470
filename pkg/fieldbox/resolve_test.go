package fieldbox

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/gardar/fieldbox/pkg/tokens"
)

// invoicePage lays out a small single-column invoice on a US Letter page
func invoicePage() tokens.Page {
	return tokens.NewPage([]tokens.Token{
		word("ACME", 72, 110, 60),
		word("Corp", 114, 150, 60),
		word("Suite", 72, 100, 80),
		word("5A-1204", 104, 150, 80),
		word("450", 72, 90, 94),
		word("Somewhere", 94, 160, 94),
		word("Street", 164, 200, 94),
		word("Invoice", 350, 390, 60),
		word("Number:", 394, 440, 60),
		word("INV-123", 444, 500, 60),
		word("Invoice", 350, 390, 80),
		word("Date:", 394, 420, 80),
		word("January", 424, 470, 80),
		word("25,", 474, 490, 80),
		word("2016", 494, 520, 80),
		word("Account", 72, 120, 300),
		word("Number:", 124, 170, 300),
		word("ACC", 174, 200, 300),
		word("1234", 204, 230, 300),
		word("BSB", 234, 260, 300),
		word("4321", 264, 290, 300),
		word("Total", 350, 380, 500),
		word("$93.50", 384, 430, 500),
	}, 612, 792)
}

func invoiceFields() map[string]interface{} {
	return map[string]interface{}{
		"invoice_number": "INV-123",
		"invoice_date":   "January 25, 2016",
		"due_date":       nil,
		"vendor_name":    "ACME Corp",
		"vendor_address": []interface{}{"Suite 5A-1204", "450 Somewhere Street"},
		"purchase_order": "",
		"account_number": "ACC 1234 BSB 4321",
		"total_amount":   "$93.50",
		"currency":       "$",
		"line_items":     []interface{}{map[string]interface{}{"description": "Widget", "amount": 93.5}},
	}
}

func TestResolveInvoice(t *testing.T) {
	r := New(DefaultOptions())

	result, err := r.Resolve(context.Background(), []tokens.Page{invoicePage()}, invoiceFields())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	var fields []string
	for _, b := range result.Boxes {
		fields = append(fields, b.Field)
		if b.Page != 1 {
			t.Errorf("box %s on page %d, want 1", b.Field, b.Page)
		}
		if !b.Normalized {
			t.Errorf("box %s not marked normalized", b.Field)
		}
		assertInUnitSquare(t, b)
	}

	want := []string{"invoiceNumber", "invoiceDate", "vendor", "vendorAddress", "accountNumber", "total"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("box fields = %v, want %v", fields, want)
	}
	if result.BoxesCount != len(want) {
		t.Errorf("BoxesCount = %d, want %d", result.BoxesCount, len(want))
	}
	if !reflect.DeepEqual(result.WordsPerPage, []int{23}) {
		t.Errorf("WordsPerPage = %v, want [23]", result.WordsPerPage)
	}

	tokensFor := map[string][]string{}
	for _, res := range result.Resolutions {
		tokensFor[res.Field] = texts(res.Tokens)
	}
	if got := tokensFor["invoice_number"]; !reflect.DeepEqual(got, []string{"INV-123"}) {
		t.Errorf("invoice_number tokens = %v, want [INV-123]", got)
	}
	if got := tokensFor["account_number"]; !reflect.DeepEqual(got, []string{"ACC", "1234", "BSB", "4321"}) {
		t.Errorf("account_number tokens = %v", got)
	}
	if got := tokensFor["total_amount"]; !reflect.DeepEqual(got, []string{"$93.50"}) {
		t.Errorf("total_amount tokens = %v, want [$93.50]", got)
	}
	if got := tokensFor["vendor_address"]; len(got) != 5 {
		t.Errorf("vendor_address tokens = %v, want 5 address words", got)
	}
}

func TestResolveIsDeterministicAndConcurrencySafe(t *testing.T) {
	pages := []tokens.Page{invoicePage(), invoicePage()}
	fields := invoiceFields()

	sequential, err := New(DefaultOptions()).Resolve(context.Background(), pages, fields)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := New(DefaultOptions()).Resolve(context.Background(), pages, fields)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !reflect.DeepEqual(again.Boxes, sequential.Boxes) {
			t.Fatalf("run %d boxes differ:\n got %+v\nwant %+v", i, again.Boxes, sequential.Boxes)
		}
	}

	opts := DefaultOptions()
	opts.Concurrency = 4
	parallel, err := New(opts).Resolve(context.Background(), pages, fields)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(parallel.Boxes, sequential.Boxes) {
		t.Errorf("concurrent boxes differ:\n got %+v\nwant %+v", parallel.Boxes, sequential.Boxes)
	}
}

func TestResolveAtMostOneBoxPerField(t *testing.T) {
	pages := []tokens.Page{invoicePage(), invoicePage(), invoicePage()}

	result, err := New(DefaultOptions()).Resolve(context.Background(), pages, invoiceFields())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	seen := map[string]bool{}
	for _, b := range result.Boxes {
		if seen[b.Field] {
			t.Errorf("field %s emitted more than once", b.Field)
		}
		seen[b.Field] = true
		if b.Page != 1 {
			t.Errorf("field %s on page %d, want first page", b.Field, b.Page)
		}
	}
}

func TestResolveFirstPageWins(t *testing.T) {
	weak := tokens.NewPage([]tokens.Token{word("ACME", 72, 110, 60), word("Ltd", 114, 140, 60)}, 612, 792)
	strong := tokens.NewPage([]tokens.Token{word("ACME", 72, 110, 60), word("Corp", 114, 150, 60)}, 612, 792)

	res, ok := New(DefaultOptions()).Locate([]tokens.Page{weak, strong}, "vendor_name", "ACME Corp")
	if !ok {
		t.Fatal("Locate() found nothing")
	}
	if res.Page != 1 {
		t.Errorf("Page = %d, want 1", res.Page)
	}
	if got := texts(res.Tokens); !reflect.DeepEqual(got, []string{"ACME"}) {
		t.Errorf("tokens = %v, want [ACME]", got)
	}
}

func TestResolveSkipsEmptyAndMissing(t *testing.T) {
	pages := []tokens.Page{invoicePage()}
	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"nil map", nil},
		{"empty string", map[string]interface{}{"invoice_number": ""}},
		{"whitespace", map[string]interface{}{"invoice_number": "   "}},
		{"nil value", map[string]interface{}{"invoice_number": nil}},
		{"empty list", map[string]interface{}{"vendor_address": []interface{}{}}},
		{"skipped field", map[string]interface{}{"currency": "$"}},
		{"unknown field", map[string]interface{}{"customer_name": "ACME"}},
		{"no match anywhere", map[string]interface{}{"invoice_number": "XYZ-999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(DefaultOptions()).Resolve(context.Background(), pages, tt.fields)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if len(result.Boxes) != 0 {
				t.Errorf("Boxes = %+v, want none", result.Boxes)
			}
		})
	}
}

func TestResolveNoPages(t *testing.T) {
	result, err := New(DefaultOptions()).Resolve(context.Background(), nil, invoiceFields())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(result.Boxes) != 0 || len(result.WordsPerPage) != 0 {
		t.Errorf("Resolve() = %+v, want empty result", result)
	}
}

func TestLocateAddressFallback(t *testing.T) {
	page := tokens.NewPage([]tokens.Token{word("12", 72, 84, 100), word("AB", 88, 100, 100)}, 612, 792)

	res, ok := New(DefaultOptions()).Locate([]tokens.Page{page}, "vendor_address", "12 AB")
	if !ok {
		t.Fatal("Locate() with fallback found nothing")
	}
	if res.Method != MethodValue {
		t.Errorf("Method = %q, want %q", res.Method, MethodValue)
	}

	opts := DefaultOptions()
	opts.DisableAddressFallback = true
	if _, ok := New(opts).Locate([]tokens.Page{page}, "vendor_address", "12 AB"); ok {
		t.Error("Locate() without fallback found a box, want none")
	}
}

func TestLocateAddressSkipsEmptyPages(t *testing.T) {
	empty := tokens.NewPage(nil, 612, 792)
	page := tokens.NewPage([]tokens.Token{word("Harbour", 72, 120, 100), word("Road", 124, 150, 100)}, 612, 792)

	res, ok := New(DefaultOptions()).Locate([]tokens.Page{empty, page}, "shipping_address", "Harbour Road")
	if !ok {
		t.Fatal("Locate() found nothing")
	}
	if res.Page != 2 || res.Method != MethodAddress {
		t.Errorf("Locate() = page %d method %s, want page 2 method address", res.Page, res.Method)
	}
	if res.Box.Field != "shipping_address" {
		t.Errorf("Box.Field = %q, want internal name for uncatalogued field", res.Box.Field)
	}
}

func TestResolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultOptions()).Resolve(ctx, []tokens.Page{invoicePage()}, invoiceFields())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestResolveCustomCatalog(t *testing.T) {
	opts := DefaultOptions()
	opts.Catalog = Catalog{
		Fields: []Field{{Name: "reference", Output: "ref"}},
	}

	result, err := New(opts).Resolve(context.Background(), []tokens.Page{invoicePage()}, map[string]interface{}{
		"reference":      "INV-123",
		"invoice_number": "INV-123",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(result.Boxes) != 1 || result.Boxes[0].Field != "ref" {
		t.Errorf("Boxes = %+v, want one box for ref", result.Boxes)
	}
}

func TestResolveLogsEvents(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := New(opts).Resolve(context.Background(), []tokens.Page{invoicePage()}, map[string]interface{}{
		"invoice_number": "INV-123",
		"due_date":       "March 1, 2016",
	}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	out := buf.String()
	for _, event := range []string{"fieldbox.resolve.document", "fieldbox.resolve.field_found", "fieldbox.resolve.field_not_found", "fieldbox.resolve.done"} {
		if !strings.Contains(out, event) {
			t.Errorf("log output missing %s", event)
		}
	}
}

func TestNewFillsDefaults(t *testing.T) {
	r := New(Options{})
	opts := r.Options()
	if opts.Thresholds != DefaultThresholds() {
		t.Errorf("Thresholds = %+v, want defaults", opts.Thresholds)
	}
	if len(opts.Catalog.Fields) != len(DefaultCatalog().Fields) {
		t.Error("Catalog not defaulted")
	}
	if opts.Labels == nil || opts.Concurrency != 1 {
		t.Errorf("Labels/Concurrency not defaulted: %+v", opts)
	}
	if opts.DisableAddressFallback {
		t.Error("address fallback disabled by zero Options")
	}

	page := tokens.NewPage([]tokens.Token{word("12", 72, 84, 100), word("AB", 88, 100, 100)}, 612, 792)
	res, ok := r.Locate([]tokens.Page{page}, "vendor_address", "12 AB")
	if !ok || res.Method != MethodValue {
		t.Errorf("zero Options Locate() = %+v, %v, want a value match", res, ok)
	}
}

func TestResolveLiteralPage(t *testing.T) {
	words := []tokens.Token{
		tokens.NewTopBottom("INV-123", 100, 200, 50, 60),
		tokens.NewExplicit("Harbour", 72, 120, 682, 692),
		tokens.NewExplicit("Road", 125, 150, 682, 692),
		tokens.NewExplicit("Bristol", 72, 120, 182, 192),
	}
	fields := map[string]interface{}{
		"invoice_number": "INV-123",
		"vendor_address": "Harbour Road Bristol",
	}

	literal := tokens.Page{Words: words, Width: 612, Height: 792}
	got, err := New(DefaultOptions()).Resolve(context.Background(), []tokens.Page{literal}, fields)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got.Resolutions) != 2 {
		t.Fatalf("Resolve() found %d fields, want 2", len(got.Resolutions))
	}

	byField := map[string]Box{}
	for _, res := range got.Resolutions {
		byField[res.Field] = res.Box
	}
	assertBox(t, byField["invoice_number"], Box{X: 95.0 / 612, Y: 49.0 / 792, Width: 110.0 / 612, Height: 12.0 / 792})
	assertBox(t, byField["vendor_address"], Box{X: 68.1 / 612, Y: 99.0 / 792, Width: 85.8 / 612, Height: 12.0 / 792})

	built, err := New(DefaultOptions()).Resolve(context.Background(), []tokens.Page{tokens.NewPage(words, 612, 792)}, fields)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(got.Boxes, built.Boxes) {
		t.Errorf("literal page boxes = %+v, NewPage boxes = %+v", got.Boxes, built.Boxes)
	}
}

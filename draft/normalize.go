package draft

import (
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedInput is returned only when a body that claims to be JSON cannot
// be parsed. Form-encoded normalization never hard-fails.
var ErrMalformedInput = errors.New("malformed JSON body")

// Alias tables: each logical field maps to its accepted input key names in
// lookup order. The first present, non-empty key wins. Fixed and enumerable;
// nothing is guessed at runtime.
var fieldAliases = map[string][]string{
	"invoice_number":  {"invoice_number", "id_invoice_number"},
	"invoice_date":    {"invoice_date", "id_invoice_date"},
	"due_date":        {"due_date", "id_due_date"},
	"tax_rate":        {"tax_rate", "id_tax_rate"},
	"discount_amount": {"discount_amount", "id_discount_amount"},
	"status":          {"status", "id_status"},
	"payment_terms":   {"payment_terms", "id_payment_terms"},
	"notes":           {"notes", "id_notes"},
	"currency":        {"currency", "id_currency"},
}

var clientAliases = map[string][]string{
	"name":    {"client_name", "id_client_name", "client"},
	"email":   {"client_email", "id_client_email"},
	"phone":   {"client_phone", "id_client_phone"},
	"address": {"client_address", "id_client_address"},
}

var businessAliases = map[string][]string{
	"id":             {"business", "business_id"},
	"business_name":  {"business_name", "id_business_name", "id_business_name_text"},
	"email":          {"business_email", "id_business_email", "id_business_email_text"},
	"phone":          {"business_phone", "id_business_phone", "id_business_phone_text"},
	"address":        {"business_address", "id_business_address", "id_business_address_text"},
	"photo_data_url": {"business_photo_data_url"},
}

var itemFieldAliases = map[string]string{
	"description":      "description",
	"desc":             "description",
	"item_description": "description",
	"quantity":         "quantity",
	"qty":              "quantity",
	"unit_price":       "unit_price",
	"price":            "unit_price",
}

// <anything>-<index>-<field>, e.g. "item-0-description" or "form-2-qty".
var itemKeyRe = regexp.MustCompile(`^.*-(\d+)-(.+)$`)

// bare description keys like "description-0" or "desc_1"
var bareDescRe = regexp.MustCompile(`^(?:description|desc|item_description)[-_]?(\d+)$`)

// ParseDecimalDefault parses s as a decimal amount. The second return value
// reports whether the input was unusable and the zero default applied, so
// silent coercions stay observable.
func ParseDecimalDefault(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}

// FromJSON maps a canonical JSON invoice payload onto a Draft plus unresolved
// business and client fragments. It fails only on unparsable JSON.
func FromJSON(body []byte) (*Draft, *BusinessSnapshot, *ClientRef, error) {
	var payload struct {
		InvoiceNumber  string `json:"invoice_number"`
		InvoiceDate    string `json:"invoice_date"`
		DueDate        string `json:"due_date"`
		Status         string `json:"status"`
		Currency       string `json:"currency"`
		TaxRate        any    `json:"tax_rate"`
		DiscountAmount any    `json:"discount_amount"`
		PaymentTerms   string `json:"payment_terms"`
		Notes          string `json:"notes"`
		Items          []struct {
			Description string `json:"description"`
			Quantity    any    `json:"quantity"`
			UnitPrice   any    `json:"unit_price"`
		} `json:"items"`
		Client *struct {
			ID      any    `json:"id"`
			Name    string `json:"name"`
			Email   string `json:"email"`
			Phone   string `json:"phone"`
			Address string `json:"address"`
		} `json:"client"`
		Business *struct {
			ID           any    `json:"id"`
			BusinessName string `json:"business_name"`
			Name         string `json:"name"`
			Email        string `json:"email"`
			Phone        string `json:"phone"`
			Address      string `json:"address"`
			City         string `json:"city"`
			State        string `json:"state"`
			ZipCode      string `json:"zip_code"`
			Country      string `json:"country"`
			PhotoDataURL string `json:"photo_data_url"`
		} `json:"business"`
	}

	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, nil, nil, ErrMalformedInput
	}

	d := &Draft{
		InvoiceNumber: payload.InvoiceNumber,
		InvoiceDate:   payload.InvoiceDate,
		DueDate:       payload.DueDate,
		Status:        normalizeStatus(payload.Status),
		Currency:      normalizeCurrency(payload.Currency),
		PaymentTerms:  payload.PaymentTerms,
		Notes:         payload.Notes,
	}
	d.TaxRate, _ = coerceDecimal(payload.TaxRate)
	d.DiscountAmount, _ = coerceDecimal(payload.DiscountAmount)

	for _, it := range payload.Items {
		qty, _ := coerceDecimal(it.Quantity)
		price, _ := coerceDecimal(it.UnitPrice)
		d.Items = append(d.Items, LineItem{
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}

	var client *ClientRef
	if payload.Client != nil {
		client = &ClientRef{
			ID:      coerceID(payload.Client.ID),
			Name:    payload.Client.Name,
			Email:   payload.Client.Email,
			Phone:   payload.Client.Phone,
			Address: payload.Client.Address,
		}
	}

	var business *BusinessSnapshot
	if payload.Business != nil {
		name := payload.Business.BusinessName
		if name == "" {
			name = payload.Business.Name
		}
		business = &BusinessSnapshot{
			ProfileID:    coerceID(payload.Business.ID),
			Name:         name,
			Email:        payload.Business.Email,
			Phone:        payload.Business.Phone,
			Address:      payload.Business.Address,
			City:         payload.Business.City,
			State:        payload.Business.State,
			ZipCode:      payload.Business.ZipCode,
			Country:      payload.Business.Country,
			PhotoDataURL: payload.Business.PhotoDataURL,
		}
	}

	return d, business, client, nil
}

// FromForm maps flat form-encoded key/value pairs onto a Draft plus unresolved
// business and client fragments. Lookup uses the alias tables; missing or
// unparsable values default rather than failing the request.
func FromForm(values map[string]string) (*Draft, *BusinessSnapshot, *ClientRef) {
	get := func(aliases map[string][]string, field string) string {
		for _, key := range aliases[field] {
			if v := strings.TrimSpace(values[key]); v != "" {
				return v
			}
		}
		return ""
	}

	d := &Draft{
		InvoiceNumber: get(fieldAliases, "invoice_number"),
		InvoiceDate:   get(fieldAliases, "invoice_date"),
		DueDate:       get(fieldAliases, "due_date"),
		Status:        normalizeStatus(get(fieldAliases, "status")),
		Currency:      normalizeCurrency(get(fieldAliases, "currency")),
		PaymentTerms:  get(fieldAliases, "payment_terms"),
		Notes:         get(fieldAliases, "notes"),
	}
	d.TaxRate, _ = ParseDecimalDefault(get(fieldAliases, "tax_rate"))
	d.DiscountAmount, _ = ParseDecimalDefault(get(fieldAliases, "discount_amount"))
	d.Items = collectFormItems(values)

	client := &ClientRef{
		Name:    get(clientAliases, "name"),
		Email:   get(clientAliases, "email"),
		Phone:   get(clientAliases, "phone"),
		Address: get(clientAliases, "address"),
	}

	business := &BusinessSnapshot{
		ProfileID:    get(businessAliases, "id"),
		Name:         get(businessAliases, "business_name"),
		Email:        get(businessAliases, "email"),
		Phone:        get(businessAliases, "phone"),
		Address:      get(businessAliases, "address"),
		PhotoDataURL: get(businessAliases, "photo_data_url"),
	}

	return d, business, client
}

// collectFormItems recovers line items from formset-style keys, grouping by
// index and emitting items in ascending index order.
func collectFormItems(values map[string]string) []LineItem {
	rows := map[int]map[string]string{}

	for key, val := range values {
		if m := itemKeyRe.FindStringSubmatch(key); m != nil {
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			field, ok := itemFieldAliases[m[2]]
			if !ok {
				continue
			}
			if rows[idx] == nil {
				rows[idx] = map[string]string{}
			}
			if rows[idx][field] == "" {
				rows[idx][field] = val
			}
		}
	}
	// second pass for bare keys like "description-0"
	for key, val := range values {
		if m := bareDescRe.FindStringSubmatch(key); m != nil {
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if rows[idx] == nil {
				rows[idx] = map[string]string{}
			}
			if rows[idx]["description"] == "" {
				rows[idx]["description"] = val
			}
		}
	}

	indexes := make([]int, 0, len(rows))
	for idx := range rows {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	items := make([]LineItem, 0, len(indexes))
	for _, idx := range indexes {
		row := rows[idx]
		qty, _ := ParseDecimalDefault(row["quantity"])
		price, _ := ParseDecimalDefault(row["unit_price"])
		items = append(items, LineItem{
			Description: row["description"],
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items
}

func normalizeStatus(s string) Status {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return StatusDraft
	}
	return st
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return "USD"
	}
	return c
}

// coerceDecimal accepts the loose numeric shapes JSON callers send
// (number, numeric string, null) and defaults anything else to zero.
func coerceDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, true
		}
		return d, false
	case string:
		return ParseDecimalDefault(t)
	case float64:
		return decimal.NewFromFloat(t), false
	default:
		return decimal.Zero, true
	}
}

// coerceID renders a loosely typed id (string or number) as its string form.
func coerceID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return ""
	}
}

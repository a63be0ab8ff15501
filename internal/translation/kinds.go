package translation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind names a category of translatable content. Each kind owns one durable
// file per target language.
type Kind string

const (
	KindProduct     Kind = "product"
	KindCategory    Kind = "category"
	KindSubcategory Kind = "subcategory"
	KindArticle     Kind = "article"
	KindContactInfo Kind = "contact_info"
	KindCompanyInfo Kind = "company_info"
	KindAdvantage   Kind = "advantage"
	KindCertificate Kind = "certificate"
	KindFrontend    Kind = "frontend"
)

var ErrUnknownKind = errors.New("unknown translation kind")

// recordKinds is ordered the way batch runs walk the catalog.
var recordKinds = []Kind{
	KindCategory,
	KindSubcategory,
	KindProduct,
	KindArticle,
	KindContactInfo,
	KindCompanyInfo,
	KindAdvantage,
	KindCertificate,
}

var kindFields = map[Kind][]string{
	KindProduct:     {"name", "description", "features", "applications"},
	KindCategory:    {"name", "description"},
	KindSubcategory: {"name", "description"},
	KindArticle:     {"title", "content", "excerpt"},
	KindContactInfo: {"name", "value"},
	KindCompanyInfo: {"value"},
	KindAdvantage:   {"title", "description"},
	KindCertificate: {"name", "description"},
}

// RecordKinds lists the kinds backed by catalog records.
func RecordKinds() []Kind {
	return append([]Kind(nil), recordKinds...)
}

// ParseKind validates a kind name. The frontend kind is accepted.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if kind == KindFrontend {
		return kind, nil
	}
	if _, ok := kindFields[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
	return kind, nil
}

// Fields returns the translatable fields of a record kind, nil for frontend.
func (k Kind) Fields() []string {
	return append([]string(nil), kindFields[k]...)
}

func (k Kind) IsRecordKind() bool {
	_, ok := kindFields[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// FieldKey addresses one translated field of one record.
type FieldKey struct {
	Field    string
	ObjectID int64
}

// String renders the "{field}_{id}" form used in durable files.
func (k FieldKey) String() string {
	return k.Field + "_" + strconv.FormatInt(k.ObjectID, 10)
}

// ParseFieldKey splits a durable-file key at its last underscore. Field
// names may themselves contain underscores.
func ParseFieldKey(raw string) (FieldKey, bool) {
	idx := strings.LastIndexByte(raw, '_')
	if idx <= 0 || idx == len(raw)-1 {
		return FieldKey{}, false
	}
	id, err := strconv.ParseInt(raw[idx+1:], 10, 64)
	if err != nil || id < 0 {
		return FieldKey{}, false
	}
	return FieldKey{Field: raw[:idx], ObjectID: id}, true
}

// Record is the translatable projection of one catalog row.
type Record struct {
	ID     int64
	Fields map[string]string
}

// Value returns the source text of a field, empty when unset.
func (r Record) Value(field string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[field]
}

package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"lingye.co/catalog/internal/translation"
)

// translationTables binds each record kind to its model and the filter the
// batch commands apply: active rows, or published articles.
var translationTables = map[translation.Kind]struct {
	model  func() any
	filter func(tx *gorm.DB) *gorm.DB
}{
	translation.KindProduct:     {model: func() any { return &Product{} }, filter: activeOnly},
	translation.KindCategory:    {model: func() any { return &Category{} }, filter: activeOnly},
	translation.KindSubcategory: {model: func() any { return &SubCategory{} }, filter: activeOnly},
	translation.KindArticle: {model: func() any { return &Article{} }, filter: func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", ArticleStatusPublished)
	}},
	translation.KindContactInfo: {model: func() any { return &ContactInfo{} }, filter: activeOnly},
	translation.KindCompanyInfo: {model: func() any { return &CompanyInfo{} }, filter: activeOnly},
	translation.KindAdvantage:   {model: func() any { return &Advantage{} }, filter: activeOnly},
	translation.KindCertificate: {model: func() any { return &Certificate{} }, filter: activeOnly},
}

func activeOnly(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_active = ?", true)
}

// ListTranslationRecords projects the batch-eligible rows of one kind onto
// their translatable fields, ordered by id.
func (p *Pool) ListTranslationRecords(ctx context.Context, kind translation.Kind) ([]translation.Record, error) {
	table, ok := translationTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", translation.ErrUnknownKind, kind)
	}
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	fields := kind.Fields()
	var rows []map[string]any
	err = table.filter(gdb.Model(table.model())).
		Select(selectColumns(fields)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", kind, err)
	}

	records := make([]translation.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, projectRecord(row, fields))
	}
	return records, nil
}

// GetTranslationRecord loads one row by id regardless of its active flag.
func (p *Pool) GetTranslationRecord(ctx context.Context, kind translation.Kind, id int64) (translation.Record, error) {
	table, ok := translationTables[kind]
	if !ok {
		return translation.Record{}, fmt.Errorf("%w: %q", translation.ErrUnknownKind, kind)
	}
	gdb, err := p.session(ctx)
	if err != nil {
		return translation.Record{}, err
	}

	fields := kind.Fields()
	var row map[string]any
	res := gdb.Model(table.model()).
		Select(selectColumns(fields)).
		Where("id = ?", id).
		Take(&row)
	if res.Error != nil {
		return translation.Record{}, fmt.Errorf("get %s %d: %w", kind, id, res.Error)
	}
	return projectRecord(row, fields), nil
}

func selectColumns(fields []string) []string {
	cols := make([]string, 0, len(fields)+1)
	cols = append(cols, "id")
	cols = append(cols, fields...)
	return cols
}

func projectRecord(row map[string]any, fields []string) translation.Record {
	record := translation.Record{Fields: make(map[string]string, len(fields))}
	switch id := row["id"].(type) {
	case int64:
		record.ID = id
	case int32:
		record.ID = int64(id)
	case int:
		record.ID = int64(id)
	}
	for _, field := range fields {
		switch v := row[field].(type) {
		case string:
			record.Fields[field] = v
		case []byte:
			record.Fields[field] = string(v)
		}
	}
	return record
}

func (p *Pool) CreateTranslationLog(ctx context.Context, entry translation.LogEntry) error {
	gdb, err := p.session(ctx)
	if err != nil {
		return err
	}

	row := TranslationLog{
		RunUUID:         entry.RunUUID,
		TranslationType: entry.TranslationType,
		TargetLanguage:  entry.TargetLanguage,
		Status:          string(entry.Status),
		Message:         entry.Message,
		Logs:            entry.Logs,
		ItemsProcessed:  entry.ItemsProcessed,
		ItemsSuccess:    entry.ItemsSuccess,
		ItemsFailed:     entry.ItemsFailed,
		CreatedAt:       entry.CreatedAt,
	}
	if entry.Duration > 0 {
		seconds := entry.Duration.Seconds()
		row.DurationSeconds = &seconds
	}
	if err := gdb.Create(&row).Error; err != nil {
		return fmt.Errorf("insert translation log %s: %w", entry.RunUUID, err)
	}
	return nil
}

// TranslationLogFilter narrows ListTranslationLogs. Empty fields match all.
type TranslationLogFilter struct {
	TranslationType string
	TargetLanguage  string
	Status          string
	Limit           int
}

// ListTranslationLogs returns audit entries newest first.
func (p *Pool) ListTranslationLogs(ctx context.Context, filter TranslationLogFilter) ([]translation.LogEntry, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	q := gdb.Model(&TranslationLog{}).Order("created_at DESC, id DESC")
	if v := strings.TrimSpace(filter.TranslationType); v != "" {
		q = q.Where("translation_type = ?", v)
	}
	if v := strings.TrimSpace(filter.TargetLanguage); v != "" {
		q = q.Where("target_language = ?", v)
	}
	if v := strings.TrimSpace(filter.Status); v != "" {
		q = q.Where("status = ?", v)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var rows []TranslationLog
	if err := q.Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list translation logs: %w", err)
	}

	out := make([]translation.LogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toLogEntry())
	}
	return out, nil
}

func (l TranslationLog) toLogEntry() translation.LogEntry {
	entry := translation.LogEntry{
		RunUUID:         l.RunUUID,
		TranslationType: l.TranslationType,
		TargetLanguage:  l.TargetLanguage,
		Status:          translation.LogStatus(l.Status),
		Message:         l.Message,
		Logs:            l.Logs,
		ItemsProcessed:  l.ItemsProcessed,
		ItemsSuccess:    l.ItemsSuccess,
		ItemsFailed:     l.ItemsFailed,
		CreatedAt:       l.CreatedAt,
	}
	if l.DurationSeconds != nil {
		entry.Duration = time.Duration(*l.DurationSeconds * float64(time.Second))
	}
	return entry
}

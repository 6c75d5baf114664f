// Package repository implements SurrealDB-backed data access for company
// documents and player ledger accounts.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/foxsrv/companyeconomy/internal/database"
	"github.com/foxsrv/companyeconomy/internal/model"
)

// CompanyRepository stores one document per company in the company table.
// The record id is the lowercased company name; the canonical name is kept
// in the document body. Saves rewrite the whole record.
type CompanyRepository struct {
	db database.Database
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db database.Database) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// List enumerates every persisted company document. Records that fail to
// decode are reported in malformed, one error per record; they never abort
// the listing.
func (r *CompanyRepository) List(ctx context.Context) (records []model.CompanyRecord, malformed []error, err error) {
	result, err := r.db.Query(ctx, `SELECT * FROM company`, nil)
	if err != nil {
		return nil, nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return nil, nil, nil
	}

	for _, row := range rows {
		record, ok := asRecordMap(row)
		if !ok {
			malformed = append(malformed, fmt.Errorf("company record is not a document: %T", row))
			continue
		}

		name, _ := stringValue(record["name"])
		if name == "" {
			malformed = append(malformed, fmt.Errorf("company record has no name"))
			continue
		}

		var doc model.CompanyDocument
		if err := decodeRecord(record, &doc); err != nil {
			malformed = append(malformed, fmt.Errorf("company %q: %w", name, err))
			continue
		}
		// The name field rides inside the record but is identity, not body.
		if doc.DisplayName == "" {
			doc.DisplayName = name
		}

		records = append(records, model.CompanyRecord{Name: name, Document: doc})
	}

	return records, malformed, nil
}

// Save writes the full document for a company, creating the record if it
// does not exist and replacing it entirely if it does.
func (r *CompanyRepository) Save(ctx context.Context, name string, doc *model.CompanyDocument) error {
	content, err := documentContent(name, doc)
	if err != nil {
		return err
	}

	query := `UPSERT type::thing('company', string::lowercase($name)) CONTENT $content`
	vars := map[string]interface{}{
		"name":    name,
		"content": content,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: company %s", database.ErrDuplicate, name)
		}
		return err
	}
	return nil
}

// Delete removes a company's document
func (r *CompanyRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE type::thing('company', string::lowercase($name))`
	return r.db.Execute(ctx, query, map[string]interface{}{"name": name})
}

// documentContent flattens a document into the record body, carrying the
// canonical name alongside it. Group ids become string keys on the wire.
func documentContent(name string, doc *model.CompanyDocument) (map[string]interface{}, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode company %q: %w", name, err)
	}

	content := make(map[string]interface{})
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("encode company %q: %w", name, err)
	}

	content["name"] = strings.TrimSpace(name)
	return content, nil
}

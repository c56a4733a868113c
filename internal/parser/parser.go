// Package parser turns raw proposal files into domain Documents.
//
// A proposal file starts with a colon-delimited header block (one
// "Key: value" field per line, terminated by the first blank line)
// followed by the free-form body. Parsing is a pure function of the
// input text; field order does not matter, duplicate fields are
// rejected, and unknown fields are ignored for forward compatibility.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// dateLayout is the accepted Created date format.
const dateLayout = "2006-01-02"

// Canonical header field names in serialisation order.
var fieldOrder = []string{
	"proposal",
	"title",
	"author",
	"status",
	"type",
	"created",
	"requires",
	"replaces",
	"superseded-by",
}

// requiredFields must be present in every header.
var requiredFields = []string{"proposal", "title", "status", "type", "created"}

// Parse parses one raw input file into a Document.
//
// All field-level problems are collected before returning, so a failed
// parse names every offending field of the document, not just the
// first. The returned error wraps domain.ErrMalformedHeader and/or
// domain.ErrDuplicateField.
func Parse(raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	fields, body, errs := splitHeader(raw)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			errs = append(errs, headerErr(raw.Path, name, "required field missing"))
		}
	}

	doc := &domain.Document{
		SourcePath: raw.Path,
		Body:       body,
	}

	for name, value := range fields {
		if err := setField(doc, name, value); err != nil {
			errs = append(errs, headerErr(raw.Path, name, err.Error()))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return doc, nil
}

// Format serialises a Document's header back to its canonical textual
// form: fields in canonical order, one per line, trailing blank line.
// Parsing the output yields an identical Document header.
func Format(doc *domain.Document) string {
	var b strings.Builder
	for _, name := range fieldOrder {
		value := formatField(doc, name)
		if value == "" {
			continue
		}
		b.WriteString(canonicalKey(name))
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
	return b.String()
}

// splitHeader separates the header block from the body and returns the
// raw field map. Continuation lines (leading whitespace) extend the
// previous field's value.
func splitHeader(raw *domain.RawDocument) (map[string]string, string, []error) {
	var errs []error
	fields := make(map[string]string)

	lines := strings.Split(string(raw.Content), "\n")
	var lastKey string
	bodyStart := len(lines)

	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if strings.TrimSpace(trimmed) == "" {
			bodyStart = i + 1
			break
		}

		// Continuation of the previous field
		if lastKey != "" && (strings.HasPrefix(trimmed, " ") || strings.HasPrefix(trimmed, "\t")) {
			fields[lastKey] += " " + strings.TrimSpace(trimmed)
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			errs = append(errs, headerErr(raw.Path, "header", fmt.Sprintf("line %d is not a \"Key: value\" field", i+1)))
			lastKey = ""
			continue
		}

		name := strings.ToLower(strings.TrimSpace(key))
		if name == "" {
			errs = append(errs, headerErr(raw.Path, "header", fmt.Sprintf("empty field name on line %d", i+1)))
			lastKey = ""
			continue
		}

		if _, dup := fields[name]; dup {
			errs = append(errs, &domain.HeaderError{
				Source: raw.Path,
				Field:  name,
				Detail: "field declared more than once",
				Err:    domain.ErrDuplicateField,
			})
			lastKey = ""
			continue
		}

		fields[name] = strings.TrimSpace(value)
		lastKey = name
	}

	if len(fields) == 0 && len(errs) == 0 {
		errs = append(errs, headerErr(raw.Path, "header", "missing colon-delimited header block"))
	}

	body := ""
	if bodyStart < len(lines) {
		body = strings.Join(lines[bodyStart:], "\n")
	}
	return fields, body, errs
}

// setField validates one header value and assigns it to the document.
// Unknown fields are ignored.
func setField(doc *domain.Document, name, value string) error {
	switch name {
	case "proposal":
		id, err := strconv.Atoi(value)
		if err != nil || id < 0 {
			return fmt.Errorf("identifier %q is not a non-negative integer", value)
		}
		doc.ID = id

	case "title":
		if value == "" {
			return errors.New("title must not be empty")
		}
		doc.Title = value

	case "author":
		doc.Authors = splitList(value)

	case "status":
		status, err := domain.ParseStatus(value)
		if err != nil {
			return err
		}
		doc.Status = status

	case "type":
		kind, err := domain.ParseKind(value)
		if err != nil {
			return err
		}
		doc.Kind = kind

	case "created":
		created, err := time.Parse(dateLayout, value)
		if err != nil {
			return fmt.Errorf("date %q is not in %s form", value, dateLayout)
		}
		doc.Created = created

	case "requires":
		ids, err := splitIDList(value)
		if err != nil {
			return err
		}
		doc.Requires = ids

	case "replaces":
		ids, err := splitIDList(value)
		if err != nil {
			return err
		}
		doc.Replaces = ids

	case "superseded-by":
		ids, err := splitIDList(value)
		if err != nil {
			return err
		}
		doc.SupersededBy = ids
	}
	return nil
}

// formatField renders one field value for Format.
func formatField(doc *domain.Document, name string) string {
	switch name {
	case "proposal":
		return strconv.Itoa(doc.ID)
	case "title":
		return doc.Title
	case "author":
		return strings.Join(doc.Authors, ", ")
	case "status":
		return string(doc.Status)
	case "type":
		return string(doc.Kind)
	case "created":
		if doc.Created.IsZero() {
			return ""
		}
		return doc.Created.Format(dateLayout)
	case "requires":
		return joinIDs(doc.Requires)
	case "replaces":
		return joinIDs(doc.Replaces)
	case "superseded-by":
		return joinIDs(doc.SupersededBy)
	}
	return ""
}

// canonicalKey maps a lowercase field name to its display form.
func canonicalKey(name string) string {
	switch name {
	case "superseded-by":
		return "Superseded-By"
	default:
		return strings.ToUpper(name[:1]) + name[1:]
	}
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// splitIDList splits a comma-separated list of proposal numbers.
func splitIDList(value string) ([]int, error) {
	var out []int
	for _, item := range splitList(value) {
		id, err := strconv.Atoi(item)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("identifier %q is not a non-negative integer", item)
		}
		out = append(out, id)
	}
	return out, nil
}

// joinIDs renders a proposal number list.
func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// headerErr builds a malformed-header error for one field.
func headerErr(source, field, detail string) error {
	return &domain.HeaderError{
		Source: source,
		Field:  field,
		Detail: detail,
		Err:    domain.ErrMalformedHeader,
	}
}

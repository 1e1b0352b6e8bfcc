package vrticapi

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

var pdfMagic = []byte("%PDF-")

var (
	facilityStringFields = []string{"id", "naziv", "tip", "grad", "opstina"}
	facilityNumberFields = []string{"max_kapacitet", "trenutno_upisano", "popunjenost", "slobodna_mesta"}
	reportNumberFields   = []string{"broj_vrtica", "ukupan_kapacitet", "ukupno_upisano", "popunjenost"}
)

// decodeList checks that body is a JSON array whose items pass validate, then
// decodes it. A JSON null decodes to an empty list.
func decodeList[T any](body []byte, validate func(gjson.Result) error) ([]T, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.NewDecodeError("response is not valid JSON", nil)
	}
	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return []T{}, nil
	}
	if !root.IsArray() {
		return nil, apperrors.NewDecodeError("expected a JSON array", fmt.Errorf("got %s", root.Type))
	}

	var itemErr error
	idx := 0
	root.ForEach(func(_, item gjson.Result) bool {
		if err := validate(item); err != nil {
			itemErr = fmt.Errorf("item %d: %w", idx, err)
			return false
		}
		idx++
		return true
	})
	if itemErr != nil {
		return nil, apperrors.NewDecodeError("unexpected list item", itemErr)
	}

	out := []T{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperrors.NewDecodeError("cannot decode list", err)
	}
	return out, nil
}

func decodeObject(body []byte, validate func(gjson.Result) error, out interface{}) error {
	if !gjson.ValidBytes(body) {
		return apperrors.NewDecodeError("response is not valid JSON", nil)
	}
	if err := validate(gjson.ParseBytes(body)); err != nil {
		return apperrors.NewDecodeError("unexpected response shape", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewDecodeError("cannot decode response", err)
	}
	return nil
}

func validateFacility(r gjson.Result) error {
	if !r.IsObject() {
		return fmt.Errorf("expected object, got %s", r.Type)
	}
	if err := checkKinds(r, facilityStringFields, gjson.String); err != nil {
		return err
	}
	if err := checkKinds(r, facilityNumberFields, gjson.Number); err != nil {
		return err
	}
	if v := r.Get("kriticno"); v.Exists() && !isBool(v) && v.Type != gjson.Null {
		return fmt.Errorf("field kriticno: expected boolean, got %s", v.Type)
	}
	return nil
}

func validateReport(r gjson.Result) error {
	if !r.IsObject() {
		return fmt.Errorf("expected object, got %s", r.Type)
	}
	if err := checkKinds(r, []string{"opstina"}, gjson.String); err != nil {
		return err
	}
	return checkKinds(r, reportNumberFields, gjson.Number)
}

func validateAuthResult(r gjson.Result) error {
	if !r.IsObject() {
		return fmt.Errorf("expected object, got %s", r.Type)
	}
	token := r.Get("access_token")
	if token.Type != gjson.String || token.Str == "" {
		return fmt.Errorf("missing access_token")
	}
	return checkKinds(r, []string{"email", "role", "token_type"}, gjson.String)
}

func validateProfile(r gjson.Result) error {
	if !r.IsObject() {
		return fmt.Errorf("expected object, got %s", r.Type)
	}
	if r.Get("email").Type != gjson.String {
		return fmt.Errorf("missing email")
	}
	return checkKinds(r, []string{"role", "created_at"}, gjson.String)
}

// checkKinds accepts absent and null fields
func checkKinds(r gjson.Result, fields []string, kind gjson.Type) error {
	for _, field := range fields {
		v := r.Get(field)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if v.Type != kind {
			return fmt.Errorf("field %s: expected %s, got %s", field, kind, v.Type)
		}
	}
	return nil
}

func isBool(v gjson.Result) bool {
	return v.Type == gjson.True || v.Type == gjson.False
}

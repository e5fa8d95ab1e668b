// Package normalize maps the heterogeneous JSON shapes produced by the
// pet-manager backend into the canonical models. The backend names fields
// inconsistently, so every logical attribute is probed across an ordered
// list of candidate field names and the first present non-empty value wins.
//
// The probe orders are a compatibility contract: two candidates can both be
// present with different values, and the earlier-listed one must win. Do not
// reorder them.
//
// Normalization never fails. Worst case the result carries the defaults:
// empty string for text, zero for numbers, empty slice for collections.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"petmanager/internal/models"
)

// Tutor-reference candidates on a pet: direct id fields first, then nested
// tutor-like objects whose own id is taken.
var (
	tutorIDKeys     = []string{"tutorId", "tutor_id", "idTutor", "id_tutor"}
	tutorObjectKeys = []string{"tutor", "responsavel", "dono", "owner"}
)

// Photo candidates: direct fields, the fields probed inside a nested
// photo-like object, and the plural/array fields tried last.
var (
	photoDirectKeys = []string{
		"urlFoto", "fotoUrl", "photoUrl", "pictureUrl", "imageUrl", "imagemUrl",
		"foto", "image", "imagem", "picture", "avatar", "thumbnail",
	}
	photoObjectKeys = []string{
		"url", "urlFoto", "fotoUrl", "foto", "path", "src", "link", "href",
		"imageUrl", "imagemUrl", "thumbnail", "base64", "data",
	}
	photoArrayKeys = []string{"fotos", "photos", "imagens", "images"}
)

// Pet normalizes an arbitrary decoded JSON value into a Pet.
func Pet(raw any) models.Pet {
	m, ok := asMap(raw)
	if !ok {
		return models.Pet{}
	}
	p := models.Pet{
		ID:      asID(m["id"]),
		Nome:    firstString(m, "nome", "name"),
		Especie: firstString(m, "especie", "species", "tipo"),
		Raca:    firstString(m, "raca", "breed", "raça"),
		Idade:   firstInt(m, "idade", "age"),
		URLFoto: PhotoURL(m),
	}
	p.TutorID, p.Tutor = TutorRef(m)
	return p
}

// Tutor normalizes an arbitrary decoded JSON value into a Tutor.
func Tutor(raw any) models.Tutor {
	m, ok := asMap(raw)
	if !ok {
		return models.Tutor{}
	}
	t := models.Tutor{
		ID:       asID(m["id"]),
		Nome:     firstString(m, "nome", "name", "nomeCompleto"),
		Telefone: firstString(m, "telefone", "phone", "celular", "contato"),
		Endereco: firstString(m, "endereco", "address", "endereço"),
		URLFoto:  PhotoURL(m),
	}
	for _, key := range []string{"pets", "animals", "animais"} {
		items, ok := asSlice(m[key])
		if !ok {
			continue
		}
		t.Pets = make([]models.Pet, 0, len(items))
		for _, item := range items {
			t.Pets = append(t.Pets, Pet(item))
		}
		break
	}
	return t
}

// TutorRef extracts the tutor reference from a pet payload: the tutor id
// and, when the backend nested the tutor inline, the tutor object itself.
func TutorRef(m map[string]any) (int64, *models.Tutor) {
	for _, key := range tutorObjectKeys {
		nested, ok := asMap(m[key])
		if !ok {
			continue
		}
		t := Tutor(nested)
		if t.ID != 0 {
			// A direct id field still wins over the nested object's id.
			if id := firstID(m, tutorIDKeys...); id != 0 {
				return id, &t
			}
			return t.ID, &t
		}
	}
	return firstID(m, tutorIDKeys...), nil
}

// PhotoURL extracts a photo URL from any entity payload, or "" when no
// photo-like field is present.
func PhotoURL(m map[string]any) string {
	for _, key := range photoDirectKeys {
		v, ok := m[key]
		if !ok {
			continue
		}
		if url := photoFromValue(v); url != "" {
			return url
		}
	}
	for _, key := range photoArrayKeys {
		items, ok := asSlice(m[key])
		if !ok {
			continue
		}
		for _, item := range items {
			if url := photoFromValue(item); url != "" {
				return url
			}
		}
	}
	return ""
}

// photoFromValue resolves a single photo candidate: a non-blank string is
// used directly, a photo-like object is probed across photoObjectKeys.
func photoFromValue(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case map[string]any:
		return firstString(value, photoObjectKeys...)
	default:
		return ""
	}
}

// Page normalizes a paginated payload. The backend may send a proper page
// object, a bare array, or a page object under aliased field names.
// page and size are the requested values, used as fallbacks; size also
// drives the totalPages computation when the backend omits it (default 10).
func Page[T any](raw any, page, size int, item func(any) T) models.Page[T] {
	if size <= 0 {
		size = 10
	}
	out := models.Page[T]{Size: size}

	mapItems := func(items []any) []T {
		content := make([]T, 0, len(items))
		for _, it := range items {
			content = append(content, item(it))
		}
		return content
	}

	// Bare array: the whole payload is the content.
	if items, ok := asSlice(raw); ok {
		out.Content = mapItems(items)
		out.TotalPages = 1
		out.TotalElements = len(items)
		return out
	}

	m, ok := asMap(raw)
	if !ok {
		out.Content = []T{}
		out.Number = page
		return out
	}

	items, ok := asSlice(m["content"])
	if ok {
		out.Content = mapItems(items)
		out.TotalElements = firstInt(m, "totalElements", "total_elements", "total")
		if out.TotalElements == 0 {
			out.TotalElements = len(items)
		}
		out.TotalPages = firstInt(m, "totalPages", "total_pages")
		if out.TotalPages == 0 {
			out.TotalPages = ceilDiv(out.TotalElements, size)
		}
		out.Number = firstInt(m, "number", "page")
		if out.Number == 0 {
			out.Number = page
		}
		return out
	}

	// Aliased content field as last resort.
	for _, key := range []string{"data", "items", "results", "records"} {
		if aliased, ok := asSlice(m[key]); ok {
			items = aliased
			break
		}
	}
	out.Content = mapItems(items)
	out.TotalElements = firstInt(m, "totalElements", "total_elements", "total")
	if out.TotalElements == 0 {
		out.TotalElements = len(items)
	}
	out.TotalPages = firstInt(m, "totalPages", "total_pages", "pages")
	if out.TotalPages == 0 {
		out.TotalPages = ceilDiv(out.TotalElements, size)
	}
	out.Number = firstInt(m, "number", "page", "currentPage")
	if out.Number == 0 {
		out.Number = page
	}
	return out
}

// StringField probes keys in order and returns the first non-blank string
// value. Exposed for response-shape probing outside entity normalization
// (login token aliases, upload URL extraction, server error messages).
func StringField(m map[string]any, keys ...string) string {
	return firstString(m, keys...)
}

func ceilDiv(a, b int) int {
	if b <= 0 || a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// firstString probes keys in order and returns the first non-blank string.
func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstInt probes keys in order and returns the first non-zero integer.
func firstInt(m map[string]any, keys ...string) int {
	for _, key := range keys {
		if n, ok := asNumber(m[key]); ok && n != 0 {
			return int(n)
		}
	}
	return 0
}

func firstID(m map[string]any, keys ...string) int64 {
	for _, key := range keys {
		if id := asID(m[key]); id != 0 {
			return id
		}
	}
	return 0
}

// asID accepts numeric ids and numeric strings.
func asID(v any) int64 {
	if n, ok := asNumber(v); ok {
		return int64(n)
	}
	if s, ok := v.(string); ok {
		if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

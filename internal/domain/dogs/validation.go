package dogs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const (
	keyName        = "name"
	keyBreed       = "breed"
	keyAge         = "age"
	keyDescription = "description"
)

// validKeys es la allow-list del schema de Dog.
var validKeys = map[string]struct{}{
	keyName:        {},
	keyBreed:       {},
	keyAge:         {},
	keyDescription: {},
}

var (
	ErrInvalidJSON = errors.New("body must be a JSON object")
	ErrInvalidID   = errors.New("id should be a number")

	// ErrIDNotInteger: el id es numérico pero ningún registro puede tenerlo (1.5, 1e300).
	ErrIDNotInteger = errors.New("id is not an integer")
)

// Object es un body JSON decodificado conservando el orden de las claves,
// para que los errores salgan en el mismo orden en que llegaron.
type Object struct {
	keys   []string
	values map[string]json.RawMessage
}

// DecodeObject lee un objeto JSON. Un body vacío equivale a {}.
// Un arreglo en el nivel superior se trata como objeto con claves "0", "1"...
// Las claves que son índices enteros van primero, en orden ascendente; el resto
// conserva el orden de llegada.
func DecodeObject(r io.Reader) (Object, error) {
	obj := Object{values: map[string]json.RawMessage{}}
	if r == nil {
		return obj, nil
	}

	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err == io.EOF {
		return obj, nil
	}
	if err != nil {
		return Object{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return Object{}, ErrInvalidJSON
	}

	for i := 0; dec.More(); i++ {
		key := strconv.Itoa(i)
		if d == '{' {
			tok, err := dec.Token()
			if err != nil {
				return Object{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
			if key, ok = tok.(string); !ok {
				return Object{}, ErrInvalidJSON
			}
		}

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return Object{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		// clave repetida: gana el último valor, conserva la primera posición
		if _, seen := obj.values[key]; !seen {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = v
	}

	if _, err := dec.Token(); err != nil {
		return Object{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Object{}, fmt.Errorf("%w: trailing data after object", ErrInvalidJSON)
	}

	sortIndexKeys(obj.keys)
	return obj, nil
}

// sortIndexKeys adelanta las claves que son índices enteros ("0", "7", "42"),
// ordenadas numéricamente. Es el orden en que un cliente JS enumera las claves.
func sortIndexKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, aIdx := indexKey(keys[i])
		b, bIdx := indexKey(keys[j])
		if aIdx && bIdx {
			return a < b
		}
		return aIdx && !bIdx
	})
}

// indexKey reconoce índices canónicos: sin ceros a la izquierda y menores que 2^32-1.
func indexKey(k string) (uint64, bool) {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return 0, false
	}
	for _, c := range k {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(k, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return n, true
}

func (o Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o Object) str(key string) (string, bool) {
	raw, ok := o.values[key]
	if !ok || jsonKind(raw) != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (o Object) number(key string) (float64, bool) {
	raw, ok := o.values[key]
	if !ok || jsonKind(raw) != '0' {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// jsonKind clasifica un valor crudo: '"' string, '0' número, 'n' null,
// 't' booleano, '{' objeto, '[' arreglo.
func jsonKind(raw json.RawMessage) byte {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return 0
	}
	switch c := b[0]; {
	case c == '-' || (c >= '0' && c <= '9'):
		return '0'
	case c == 'f':
		return 't'
	default:
		return c
	}
}

// ValidateKeys acumula un error por cada clave fuera del schema, en orden de llegada.
func ValidateKeys(o Object) error {
	var result *multierror.Error
	for _, k := range o.keys {
		if _, ok := validKeys[k]; !ok {
			result = multierror.Append(result, fmt.Errorf("'%s' is not a valid key", k))
		}
	}
	return result.ErrorOrNil()
}

// ValidateCreate exige los cuatro campos con su tipo JSON correcto.
// Devuelve un *multierror.Error con un mensaje por problema.
func ValidateCreate(o Object) (CreateInput, error) {
	var result *multierror.Error
	if err := ValidateKeys(o); err != nil {
		result = multierror.Append(result, err)
	}

	var in CreateInput
	var ok bool

	if in.Age, ok = o.number(keyAge); !ok {
		result = multierror.Append(result, errors.New("age should be a number"))
	}
	if in.Name, ok = o.str(keyName); !ok {
		result = multierror.Append(result, errors.New("name should be a string"))
	}
	if in.Breed, ok = o.str(keyBreed); !ok {
		result = multierror.Append(result, errors.New("breed should be a string"))
	}
	if in.Description, ok = o.str(keyDescription); !ok {
		result = multierror.Append(result, errors.New("description should be a string"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return CreateInput{}, err
	}
	return in, nil
}

// PatchFromObject arma el Patch con los campos conocidos presentes.
// Las claves desconocidas se ignoran (se reportan aparte con ValidateKeys);
// un campo conocido con tipo incorrecto devuelve ErrInvalidInput.
func PatchFromObject(o Object) (Patch, error) {
	var p Patch

	if o.Has(keyName) {
		s, ok := o.str(keyName)
		if !ok {
			return Patch{}, fmt.Errorf("%w: name should be a string", ErrInvalidInput)
		}
		p.Name = &s
	}
	if o.Has(keyBreed) {
		s, ok := o.str(keyBreed)
		if !ok {
			return Patch{}, fmt.Errorf("%w: breed should be a string", ErrInvalidInput)
		}
		p.Breed = &s
	}
	if o.Has(keyAge) {
		n, ok := o.number(keyAge)
		if !ok {
			return Patch{}, fmt.Errorf("%w: age should be a number", ErrInvalidInput)
		}
		p.Age = &n
	}
	if o.Has(keyDescription) {
		s, ok := o.str(keyDescription)
		if !ok {
			return Patch{}, fmt.Errorf("%w: description should be a string", ErrInvalidInput)
		}
		p.Description = &s
	}

	return p, nil
}

// ErrorMessages aplana un error de validación a la lista que ve el cliente.
func ErrorMessages(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

// ParseID convierte el parámetro de path a id con las reglas numéricas de JS:
// espacios alrededor, decimales, exponentes y prefijos 0x/0o/0b son válidos,
// y un string vacío vale 0. Si el valor no es un número devuelve ErrInvalidID;
// si es un número pero no un entero int64 devuelve ErrIDNotInteger.
func ParseID(raw string) (int64, error) {
	f, ok := parseNumber(strings.TrimSpace(raw))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return 0, fmt.Errorf("%w: %q", ErrIDNotInteger, raw)
	}
	return int64(f), nil
}

func parseNumber(s string) (float64, bool) {
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if errors.Is(err, strconv.ErrRange) {
				return math.Inf(1), true
			}
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}

	// ParseFloat acepta "inf", "nan", hex y guiones bajos; JS no.
	for _, c := range s {
		if !strings.ContainsRune("0123456789+-.eE", c) {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

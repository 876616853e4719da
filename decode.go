package fdw

import (
	"fmt"
	"github.com/goccy/go-json"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/deminearchiver/postgres-wasm-fdw/converters/common"
)

// funcRegistry stores per-field funcs globally and per destination type. It is never
// mutated once published; writers clone it and swap the pointer.
type funcRegistry[F any] struct {
	global map[string]F
	byDst  map[reflect.Type]map[string]F
}

func newFuncRegistry[F any]() *funcRegistry[F] {
	return &funcRegistry[F]{global: make(map[string]F), byDst: make(map[reflect.Type]map[string]F)}
}

func (r *funcRegistry[F]) clone() *funcRegistry[F] {
	out := &funcRegistry[F]{
		global: make(map[string]F, len(r.global)+1),
		byDst:  make(map[reflect.Type]map[string]F, len(r.byDst)+1),
	}
	for k, v := range r.global {
		out.global[k] = v
	}
	for t, m := range r.byDst {
		sub := make(map[string]F, len(m))
		for k, v := range m {
			sub[k] = v
		}
		out.byDst[t] = sub
	}
	return out
}

func (r *funcRegistry[F]) setFor(dt reflect.Type, field string, fn F) {
	m := r.byDst[dt]
	if m == nil {
		m = make(map[string]F)
		r.byDst[dt] = m
	}
	m[field] = fn
}

// lookup applies precedence dst > global.
func (r *funcRegistry[F]) lookup(dt reflect.Type, field string) (F, bool) {
	if fn, ok := r.byDst[dt][field]; ok {
		return fn, true
	}
	fn, ok := r.global[field]
	return fn, ok
}

type DecoderOptions struct {
	CaseInsensitive       bool // when true, columns match field and json names ignoring case
	IncludeNulls          bool // when true, NULL cells of unmatched columns are kept in AdditionalData
	DisableAdditionalData bool // when true, unmatched columns are dropped
}

type DecoderOption func(*DecoderOptions)

func WithCaseInsensitive(v bool) DecoderOption { return func(o *DecoderOptions) { o.CaseInsensitive = v } }
func WithIncludeNulls(v bool) DecoderOption { return func(o *DecoderOptions) { o.IncludeNulls = v } }
func WithDisableAdditionalData(v bool) DecoderOption {
	return func(o *DecoderOptions) { o.DisableAdditionalData = v }
}

type fieldInfo struct {
	index            []int
	name             string
	jsonName         string
	typ              reflect.Type
	isAdditionalData bool
	ignore           bool
}

type structMetadata struct {
	fields              []fieldInfo
	fieldsByName        map[string]*fieldInfo
	fieldsByJSONName    map[string]*fieldInfo
	fieldsByLowerName   map[string]*fieldInfo
	additionalDataField *fieldInfo
}

var (
	nullJSONType   = reflect.TypeOf(null.JSON{})
	boilerJSONType = reflect.TypeOf(boilertypes.JSON{})
)

// cellToType converts each built-in cell value to its plain Go counterpart.
var cellToType = map[reflect.Type]ConverterFunc{
	reflect.TypeOf(null.Bool{}):    common.CellToTypeBoolConverter,
	reflect.TypeOf(null.String{}):  common.CellToTypeStringConverter,
	reflect.TypeOf(null.Time{}):    common.CellToTypeTimeConverter,
	reflect.TypeOf(null.Float64{}): common.CellToTypeFloat64Converter,
	nullJSONType:                   common.CellToTypeJSONConverter,
}

// Decoder maps materialised rows onto structs. Columns are matched to exported fields
// by field name, then json tag name. Fields tagged `adapter:"ignore"` or `adapter:"-"`
// are skipped. Columns with no field are marshaled into an AdditionalData field of
// type null.JSON or sqlboiler types.JSON, if the struct has one.
//
// A Decoder is safe for concurrent use.
type Decoder struct {
	converters    atomic.Value // holds *funcRegistry[ConverterFunc]
	validators    atomic.Value // holds *funcRegistry[ValidatorFunc]
	metadataCache sync.Map     // map[reflect.Type]*structMetadata
	options       DecoderOptions
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, f := range opts {
		f(&d.options)
	}
	d.converters.Store(newFuncRegistry[ConverterFunc]())
	d.validators.Store(newFuncRegistry[ValidatorFunc]())
	return d
}

// RegisterConverter converts the cell value for fieldName in any destination struct.
func (d *Decoder) RegisterConverter(fieldName string, fn ConverterFunc) {
	reg := d.converters.Load().(*funcRegistry[ConverterFunc]).clone()
	reg.global[fieldName] = fn
	d.converters.Store(reg)
}

// RegisterConverterFor converts the cell value for fieldName in dstType only.
// It takes precedence over RegisterConverter.
func (d *Decoder) RegisterConverterFor(dstType any, fieldName string, fn ConverterFunc) {
	reg := d.converters.Load().(*funcRegistry[ConverterFunc]).clone()
	reg.setFor(structType(dstType), fieldName, fn)
	d.converters.Store(reg)
}

// RegisterValidator checks fieldName after assignment in any destination struct.
func (d *Decoder) RegisterValidator(fieldName string, fn ValidatorFunc) {
	reg := d.validators.Load().(*funcRegistry[ValidatorFunc]).clone()
	reg.global[fieldName] = fn
	d.validators.Store(reg)
}

// RegisterValidatorFor checks fieldName after assignment in dstType only.
func (d *Decoder) RegisterValidatorFor(dstType any, fieldName string, fn ValidatorFunc) {
	reg := d.validators.Load().(*funcRegistry[ValidatorFunc]).clone()
	reg.setFor(structType(dstType), fieldName, fn)
	d.validators.Store(reg)
}

// WarmMetadata pre-builds metadata for the given example values (T or *T).
func (d *Decoder) WarmMetadata(examples ...any) {
	for _, e := range examples {
		if e == nil {
			continue
		}
		if t := structType(e); t.Kind() == reflect.Struct {
			_ = d.getOrBuildMetadata(t)
		}
	}
}

func structType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// Decode assigns the cells of one row, described by cols, to the struct dst points to.
func (d *Decoder) Decode(cols []Column, cells []Cell, dst any) error {
	if dst == nil {
		return fmt.Errorf("dst must not be nil")
	}
	dstVal := reflect.ValueOf(dst)
	if dstVal.Kind() != reflect.Ptr || dstVal.IsNil() {
		return fmt.Errorf("dst must be a non-nil pointer")
	}
	dstVal = dstVal.Elem()
	if dstVal.Kind() != reflect.Struct {
		return fmt.Errorf("dst must point to a struct")
	}
	if len(cols) != len(cells) {
		return fmt.Errorf("got %d cells for %d columns", len(cells), len(cols))
	}

	dt := dstVal.Type()
	meta := d.getOrBuildMetadata(dt)
	var remaining map[string]any
	for i, col := range cols {
		fi := d.lookupField(meta, col.Name)
		if fi != nil && fi.ignore {
			continue
		}
		if fi == nil || fi.isAdditionalData {
			if cells[i].IsNull() && !d.options.IncludeNulls {
				continue
			}
			if remaining == nil {
				remaining = make(map[string]any)
			}
			remaining[col.Name] = cells[i].Value
			continue
		}
		if err := d.decodeField(dstVal, dt, fi, cells[i]); err != nil {
			return fmt.Errorf("decoding column %s into field %s: %w", col.Name, fi.name, err)
		}
	}

	if meta.additionalDataField != nil && !d.options.DisableAdditionalData {
		ad := fieldByIndexAlloc(dstVal, meta.additionalDataField.index)
		if err := setAdditionalData(ad, remaining); err != nil {
			return fmt.Errorf("marshaling unmatched columns to AdditionalData: %w", err)
		}
	}
	return nil
}

func (d *Decoder) lookupField(meta *structMetadata, column string) *fieldInfo {
	if fi, ok := meta.fieldsByName[column]; ok {
		return fi
	}
	if fi, ok := meta.fieldsByJSONName[column]; ok {
		return fi
	}
	if d.options.CaseInsensitive {
		if fi, ok := meta.fieldsByLowerName[strings.ToLower(column)]; ok {
			return fi
		}
	}
	return nil
}

// --- metadata helpers ---
func (d *Decoder) getOrBuildMetadata(typ reflect.Type) *structMetadata {
	if cached, ok := d.metadataCache.Load(typ); ok {
		return cached.(*structMetadata)
	}
	meta := &structMetadata{
		fieldsByName:      make(map[string]*fieldInfo),
		fieldsByJSONName:  make(map[string]*fieldInfo),
		fieldsByLowerName: make(map[string]*fieldInfo),
	}
	buildFieldMetadata(typ, meta, nil)
	for i := range meta.fields {
		fi := &meta.fields[i]
		meta.fieldsByName[fi.name] = fi
		if fi.jsonName != "" {
			meta.fieldsByJSONName[fi.jsonName] = fi
			meta.fieldsByLowerName[strings.ToLower(fi.jsonName)] = fi
		}
		if _, taken := meta.fieldsByLowerName[strings.ToLower(fi.name)]; !taken {
			meta.fieldsByLowerName[strings.ToLower(fi.name)] = fi
		}
		if fi.isAdditionalData {
			meta.additionalDataField = fi
		}
	}
	actual, _ := d.metadataCache.LoadOrStore(typ, meta)
	return actual.(*structMetadata)
}

func buildFieldMetadata(typ reflect.Type, meta *structMetadata, prefix []int) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		if f.Anonymous {
			ft := f.Type
			isPtr := ft.Kind() == reflect.Ptr
			if isPtr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				// Unexported embedded pointers cannot be allocated through reflection.
				if isPtr && f.PkgPath != "" {
					continue
				}
				buildFieldMetadata(ft, meta, idx)
				continue
			}
		}
		if f.PkgPath != "" {
			continue
		}
		adapterTag := f.Tag.Get("adapter")
		jsonName := ""
		if jt, ok := f.Tag.Lookup("json"); ok {
			jt, _, _ = strings.Cut(jt, ",")
			if jt != "-" {
				jsonName = jt
			}
		}
		isAD := f.Name == "AdditionalData" && (f.Type == nullJSONType || f.Type == boilerJSONType)
		meta.fields = append(meta.fields, fieldInfo{
			index:            idx,
			name:             f.Name,
			jsonName:         jsonName,
			typ:              f.Type,
			isAdditionalData: isAD,
			ignore:           adapterTag == "ignore" || adapterTag == "-",
		})
	}
}

// fieldByIndexAlloc is reflect.Value.FieldByIndex, allocating nil embedded pointers.
func fieldByIndexAlloc(val reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && val.Kind() == reflect.Ptr {
			if val.IsNil() {
				val.Set(reflect.New(val.Type().Elem()))
			}
			val = val.Elem()
		}
		val = val.Field(x)
	}
	return val
}

// --- core decoding ---
func (d *Decoder) decodeField(dstVal reflect.Value, dt reflect.Type, fi *fieldInfo, cell Cell) error {
	field := fieldByIndexAlloc(dstVal, fi.index)
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %s (unexported or unsettable)", fi.name)
	}
	reg := d.converters.Load().(*funcRegistry[ConverterFunc])
	if fn, ok := reg.lookup(dt, fi.name); ok && fn != nil {
		out, err := fn(cell.Value)
		if err != nil {
			return err
		}
		// Converter output may still be a cell value (null.String, ...).
		if err := assignCell(field, Cell{Type: cell.Type, Value: out}); err != nil {
			return err
		}
	} else if err := assignCell(field, cell); err != nil {
		return err
	}
	return d.runValidators(field, dt, fi.name)
}

func (d *Decoder) runValidators(field reflect.Value, dt reflect.Type, fieldName string) error {
	vreg := d.validators.Load().(*funcRegistry[ValidatorFunc])
	if fn, ok := vreg.lookup(dt, fieldName); ok && fn != nil {
		return fn(field.Interface())
	}
	return nil
}

// assignCell stores a cell value in field: directly when the types line up, through the
// cell-to-type converter otherwise. Pointer fields are nil for NULL cells.
func assignCell(field reflect.Value, cell Cell) error {
	if cell.Value != nil {
		if cv := reflect.ValueOf(cell.Value); cv.Type().AssignableTo(field.Type()) {
			field.Set(cv)
			return nil
		}
	}
	if field.Kind() == reflect.Ptr {
		if cell.IsNull() {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		elem := reflect.New(field.Type().Elem())
		if err := assignCell(elem.Elem(), cell); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}
	if cell.Value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	fn, ok := cellToType[reflect.TypeOf(cell.Value)]
	if !ok {
		return setField(field, cell.Value)
	}
	out, err := fn(cell.Value)
	if err != nil {
		return err
	}
	return setField(field, out)
}

func setField(field reflect.Value, out any) error {
	if out == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	cv := reflect.ValueOf(out)
	switch ct, ft := cv.Type(), field.Type(); {
	case ct.AssignableTo(ft):
		field.Set(cv)
	case ct.ConvertibleTo(ft) && (ct.Kind() == ft.Kind() || isBytesAndString(ct, ft)):
		field.Set(cv.Convert(ft))
	default:
		return fmt.Errorf("value of type %s cannot be stored in %s", ct, ft)
	}
	return nil
}

func isBytesAndString(a, b reflect.Type) bool {
	isBytes := func(t reflect.Type) bool { return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 }
	return (isBytes(a) && b.Kind() == reflect.String) || (a.Kind() == reflect.String && isBytes(b))
}

func setAdditionalData(ad reflect.Value, remaining map[string]any) error {
	var data []byte
	if len(remaining) > 0 {
		var err error
		if data, err = json.Marshal(remaining); err != nil {
			return err
		}
	}
	switch ad.Type() {
	case nullJSONType:
		if data == nil {
			ad.Set(reflect.ValueOf(null.JSON{}))
		} else {
			ad.Set(reflect.ValueOf(null.JSONFrom(data)))
		}
	case boilerJSONType:
		ad.Set(reflect.ValueOf(boilertypes.JSON(data)))
	}
	return nil
}

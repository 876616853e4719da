package fdw

import "reflect"

// DecoderBuilder provides a fluent API to construct a Decoder with options, converters and validators pre-registered.
type DecoderBuilder struct {
	opts     []DecoderOption
	convsG   map[string]ConverterFunc
	convsDst map[reflect.Type]map[string]ConverterFunc
	valsG    map[string]ValidatorFunc
	valsDst  map[reflect.Type]map[string]ValidatorFunc
}

// NewDecoderBuilder creates a new builder.
func NewDecoderBuilder() *DecoderBuilder {
	return &DecoderBuilder{
		convsG:   make(map[string]ConverterFunc),
		convsDst: make(map[reflect.Type]map[string]ConverterFunc),
		valsG:    make(map[string]ValidatorFunc),
		valsDst:  make(map[reflect.Type]map[string]ValidatorFunc),
	}
}

// WithOptions appends decoder options to the builder.
func (b *DecoderBuilder) WithOptions(opts ...DecoderOption) *DecoderBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// AddConverter registers a global converter by field name.
func (b *DecoderBuilder) AddConverter(field string, fn ConverterFunc) *DecoderBuilder {
	b.convsG[field] = fn
	return b
}

// AddConverterFor registers a converter for a destination type and field name.
func (b *DecoderBuilder) AddConverterFor(dst any, field string, fn ConverterFunc) *DecoderBuilder {
	addFor(b.convsDst, structType(dst), field, fn)
	return b
}

// AddValidator registers a global validator by field name.
func (b *DecoderBuilder) AddValidator(field string, fn ValidatorFunc) *DecoderBuilder {
	b.valsG[field] = fn
	return b
}

// AddValidatorFor registers a validator for a destination type and field name.
func (b *DecoderBuilder) AddValidatorFor(dst any, field string, fn ValidatorFunc) *DecoderBuilder {
	addFor(b.valsDst, structType(dst), field, fn)
	return b
}

func addFor[F any](m map[reflect.Type]map[string]F, dt reflect.Type, field string, fn F) {
	sub := m[dt]
	if sub == nil {
		sub = make(map[string]F)
		m[dt] = sub
	}
	sub[field] = fn
}

// Build constructs a Decoder, seeding each registry in a single swap.
func (b *DecoderBuilder) Build() *Decoder {
	d := NewDecoder(b.opts...)
	d.converters.Store(seedRegistry(b.convsG, b.convsDst))
	d.validators.Store(seedRegistry(b.valsG, b.valsDst))
	return d
}

func seedRegistry[F any](global map[string]F, byDst map[reflect.Type]map[string]F) *funcRegistry[F] {
	src := &funcRegistry[F]{global: global, byDst: byDst}
	return src.clone()
}

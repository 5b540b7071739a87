package ber

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_ReadLength(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		want       int
		wantOffset int
		wantErr    error
	}{
		{name: "short form", data: []byte{0x05}, want: 5, wantOffset: 1},
		{name: "short form max", data: []byte{0x7F}, want: 127, wantOffset: 1},
		{name: "long form one byte", data: []byte{0x81, 0xC8}, want: 200, wantOffset: 2},
		{name: "long form two bytes", data: []byte{0x82, 0x01, 0x00}, want: 256, wantOffset: 3},
		{name: "long form non minimal", data: []byte{0x82, 0x00, 0x05}, want: 5, wantOffset: 3},
		{name: "empty", data: nil, wantErr: ErrUnexpectedEOF},
		{name: "indefinite", data: []byte{0x80}, wantErr: ErrIndefiniteLength},
		{name: "truncated long form", data: []byte{0x82, 0x01}, wantErr: ErrUnexpectedEOF},
		{name: "too many length bytes", data: []byte{0x85, 0x01, 0x00, 0x00, 0x00, 0x00}, wantErr: ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(tt.data)
			got, err := dec.ReadLength()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, dec.Offset(), "offset must not move on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, dec.Offset())
		})
	}
}

func TestDecoder_ReadHeader(t *testing.T) {
	t.Run("context constructed", func(t *testing.T) {
		dec := NewDecoder([]byte{0xA2, 0x03, 0x02, 0x01, 0x01})
		h, err := dec.ReadHeader()
		require.NoError(t, err)
		assert.Equal(t, byte(0xA2), h.Tag)
		assert.Equal(t, ClassContextSpecific, h.Class)
		assert.True(t, h.Constructed)
		assert.Equal(t, 2, h.Number)
		assert.Equal(t, 3, h.Length)
		assert.Equal(t, 2, dec.Offset())
	})

	t.Run("application primitive", func(t *testing.T) {
		dec := NewDecoder([]byte{0x43, 0x01, 0x00})
		h, err := dec.ReadHeader()
		require.NoError(t, err)
		assert.Equal(t, ClassApplication, h.Class)
		assert.False(t, h.Constructed)
		assert.Equal(t, 3, h.Number)
	})

	t.Run("payload past end", func(t *testing.T) {
		dec := NewDecoder([]byte{0x04, 0x05, 0x41})
		_, err := dec.ReadHeader()
		require.ErrorIs(t, err, ErrUnexpectedEOF)
		assert.Equal(t, 0, dec.Offset())
	})

	t.Run("missing length", func(t *testing.T) {
		dec := NewDecoder([]byte{0x02})
		_, err := dec.ReadHeader()
		require.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestDecodeVectors(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		tests := []struct {
			data []byte
			want int32
		}{
			{[]byte{0x02, 0x01, 0x05}, 5},
			{[]byte{0x02, 0x01, 0xFF}, -1},
			{[]byte{0x02, 0x02, 0x00, 0x80}, 128},
			{[]byte{0x02, 0x02, 0xFF, 0x7F}, -129},
			{[]byte{0x02, 0x04, 0x80, 0x00, 0x00, 0x00}, math.MinInt32},
		}
		for _, tt := range tests {
			v := &Integer{}
			dec := NewDecoder(tt.data)
			require.NoError(t, v.Decode(dec))
			assert.Equal(t, tt.want, v.Value())
			assert.Equal(t, len(tt.data), dec.Offset())
		}
	})

	t.Run("unsigned strips pad byte", func(t *testing.T) {
		v := &Unsigned{kind: KindCounter}
		require.NoError(t, v.Decode(NewDecoder([]byte{0x41, 0x05, 0x00, 0xFF, 0xFF, 0xFF, 0xFF})))
		assert.Equal(t, uint32(math.MaxUint32), v.Value())
	})

	t.Run("unsigned without pad is not sign extended", func(t *testing.T) {
		v := &Unsigned{kind: KindGauge}
		require.NoError(t, v.Decode(NewDecoder([]byte{0x42, 0x01, 0xFF})))
		assert.Equal(t, uint32(255), v.Value())
	})

	t.Run("octet string is copied", func(t *testing.T) {
		data := []byte{0x04, 0x02, 0x41, 0x42}
		v := NewOctetString(nil)
		require.NoError(t, v.Decode(NewDecoder(data)))
		data[2] = 'Z'
		assert.Equal(t, []byte("AB"), v.Bytes())
	})

	t.Run("ip address", func(t *testing.T) {
		v := &IPAddress{}
		require.NoError(t, v.Decode(NewDecoder([]byte{0x40, 0x04, 192, 168, 1, 10})))
		assert.Equal(t, "192.168.1.10", v.String())
	})

	t.Run("null", func(t *testing.T) {
		dec := NewDecoder([]byte{0x05, 0x00})
		require.NoError(t, NewNull().Decode(dec))
		assert.Equal(t, 2, dec.Offset())
	})
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		data    []byte
		wantErr error
	}{
		{"integer empty payload", &Integer{}, []byte{0x02, 0x00}, ErrInvalidInteger},
		{"integer too wide", &Integer{}, []byte{0x02, 0x05, 0x01, 0x02, 0x03, 0x04, 0x05}, ErrInvalidInteger},
		{"integer truncated", &Integer{}, []byte{0x02, 0x02, 0x01}, ErrUnexpectedEOF},
		{"integer wrong tag", &Integer{}, []byte{0x04, 0x01, 0x41}, ErrTagMismatch},
		{"integer indefinite", &Integer{}, []byte{0x02, 0x80, 0x01, 0x00, 0x00}, ErrIndefiniteLength},
		{"unsigned too wide", &Unsigned{kind: KindCounter}, []byte{0x41, 0x05, 0x01, 0x02, 0x03, 0x04, 0x05}, ErrInvalidInteger},
		{"unsigned too wide after pad", &Unsigned{kind: KindCounter}, []byte{0x41, 0x06, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, ErrInvalidInteger},
		{"unsigned wrong variant", &Unsigned{kind: KindGauge}, []byte{0x41, 0x01, 0x01}, ErrTagMismatch},
		{"ip address short", &IPAddress{}, []byte{0x40, 0x03, 0x01, 0x02, 0x03}, ErrInvalidIPAddress},
		{"ip address long", &IPAddress{}, []byte{0x40, 0x05, 0x01, 0x02, 0x03, 0x04, 0x05}, ErrInvalidIPAddress},
		{"null with payload", NewNull(), []byte{0x05, 0x01, 0x00}, ErrInvalidNull},
		{"oid open group", &ObjectID{}, []byte{0x06, 0x02, 0x2B, 0x86}, ErrInvalidOID},
		{"oid arc overflow", &ObjectID{}, []byte{0x06, 0x07, 0x2B, 0x90, 0x80, 0x80, 0x80, 0x80, 0x00}, ErrInvalidOID},
		{"string truncated", NewOctetString(nil), []byte{0x04, 0x03, 0x41}, ErrUnexpectedEOF},
		{"empty input", &Integer{}, nil, ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(tt.data)
			err := tt.value.Decode(dec)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, dec.Offset(), "offset must not move on failure")
		})
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	var values []Value
	for _, v := range []int32{0, 1, -1, 127, 128, -128, -129, 32767, -32768, math.MaxInt32, math.MinInt32} {
		values = append(values, NewInteger(v))
	}
	for _, v := range []uint32{0, 127, 128, 255, 256, 0x7FFFFFFF, 0x80000000, math.MaxUint32} {
		values = append(values, NewCounter(v), NewGauge(v), NewTimeTicks(v), NewUInteger32(v))
	}
	for _, v := range []uint64{0, 0x80, math.MaxUint32 + 1, math.MaxUint64} {
		values = append(values, NewCounter64(v))
	}
	for i := 0; i < 200; i++ {
		values = append(values, NewInteger(int32(rng.Uint32())), NewCounter(rng.Uint32()))
	}
	for _, n := range []int{0, 1, 127, 128, 255, 256, 65535} {
		payload := make([]byte, n)
		rng.Read(payload)
		values = append(values, NewOctetString(payload), NewOpaque(payload))
	}
	values = append(values, NewIPAddress([]byte{127, 0, 0, 1}), NewNull(), NewUnknown(0x80, nil))

	for _, v := range values {
		b, err := Marshal(v)
		require.NoError(t, err)
		require.Len(t, b, v.EncodedLen(), "%s %v", v.Kind(), v)

		got, err := Unmarshal(b)
		require.NoError(t, err, "%s %x", v.Kind(), b)
		assert.Equal(t, v.Kind(), got.Kind())

		again, err := Marshal(got)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(b, again), "%s: %x re-encoded as %x", v.Kind(), b, again)
	}
}

func TestUnmarshal(t *testing.T) {
	t.Run("picks type from tag", func(t *testing.T) {
		v, err := Unmarshal([]byte{0x43, 0x02, 0x01, 0x00})
		require.NoError(t, err)
		require.Equal(t, KindTimeTicks, v.Kind())
		assert.Equal(t, uint32(256), v.(*Unsigned).Value())
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := Unmarshal([]byte{0x05, 0x00, 0x00})
		require.ErrorIs(t, err, ErrTrailingData)
	})

	t.Run("unknown primitive", func(t *testing.T) {
		v, err := Unmarshal([]byte{0x81, 0x00})
		require.NoError(t, err)
		require.Equal(t, KindUnknown, v.Kind())
		assert.Equal(t, byte(0x81), v.(*Unknown).Tag())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Unmarshal(nil)
		require.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestMarshalLimit(t *testing.T) {
	v := NewOctetString(make([]byte, 200))

	b, err := MarshalLimit(v, 203)
	require.NoError(t, err)
	assert.Len(t, b, 203)

	_, err = MarshalLimit(v, 202)
	require.ErrorIs(t, err, ErrLengthLimit)

	_, err = MarshalLimit(NewIPAddress([]byte{1, 2, 3}), 100)
	require.ErrorIs(t, err, ErrInvalidIPAddress)
}

func TestKindForTag(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if k == KindChoice || k == KindUnknown {
			continue
		}
		assert.Equal(t, k, KindForTag(TagFor(k)), k.String())
	}
	assert.Equal(t, KindSequence, KindForTag(0x30))
	assert.Equal(t, KindUnknown, KindForTag(0xA2))
	assert.Panics(t, func() { TagFor(Kind(-1)) })
}

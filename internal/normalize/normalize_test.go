package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"BLK", "Black"},
		{"blk", "Black"},
		{"CLEO BLACK CRY", "Cleo Black Crystal"},
		{"MT BLK", "Matte Black"},
		{"BLK/GLD", "Black/Gold"},
		{"210 tort", "210 Tortoise"},
		{"HAVANA", "Havana"},
		{"", ""},
		{"  GUN  ", "Gunmetal"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Color(tt.in))
		})
	}
}

func TestColor_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"BLK", "MT BLK", "BLK/GLD", "CLEO BLACK CRY", "Tortoise", "Rose Gold", "Demi"}
	for _, in := range inputs {
		once := Color(in)
		assert.Equal(t, once, Color(once), "normalize must be idempotent for %q", in)
	}
}

func TestSplitBrandModel(t *testing.T) {
	t.Parallel()

	brand, model := SplitBrandModel("CARRERA - 8911 V2")
	assert.Equal(t, "CARRERA", brand)
	assert.Equal(t, "8911 V2", model)

	brand, model = SplitBrandModel("KATE SPADE - CLEO/G/S")
	assert.Equal(t, "KATE SPADE", brand)
	assert.Equal(t, "CLEO/G/S", model)

	// No delimiter: everything is the model.
	brand, model = SplitBrandModel("8911")
	assert.Empty(t, brand)
	assert.Equal(t, "8911", model)

	// Hyphen without surrounding spaces is part of the model.
	brand, model = SplitBrandModel("MOD-1422")
	assert.Empty(t, brand)
	assert.Equal(t, "MOD-1422", model)
}

func TestSplitColor(t *testing.T) {
	t.Parallel()

	code, name := SplitColor("210 MATTE BLACK")
	assert.Equal(t, "210", code)
	assert.Equal(t, "MATTE BLACK", name)

	code, name = SplitColor("03GN GREEN")
	assert.Equal(t, "03GN", code)
	assert.Equal(t, "GREEN", name)

	code, name = SplitColor("TORTOISE")
	assert.Empty(t, code)
	assert.Equal(t, "TORTOISE", name)
}

func TestQuantity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, Quantity("2"))
	assert.Equal(t, 3, Quantity(" 3 pcs"))
	assert.Equal(t, 4, Quantity("QTY: 4"))
	assert.Equal(t, 1, Quantity(""))
	assert.Equal(t, 1, Quantity("n/a"))
	assert.Equal(t, 1, Quantity("0"))
}

func TestSizeTriplet(t *testing.T) {
	t.Parallel()

	eye, bridge, temple := SizeTriplet("53-19-142")
	assert.Equal(t, []string{"53", "19", "142"}, []string{eye, bridge, temple})

	eye, bridge, temple = SizeTriplet("53/19/142")
	assert.Equal(t, []string{"53", "19", "142"}, []string{eye, bridge, temple})

	eye, bridge, temple = SizeTriplet("53 - 19 - 142")
	assert.Equal(t, []string{"53", "19", "142"}, []string{eye, bridge, temple})

	eye, bridge, temple = SizeTriplet("54mm")
	assert.Equal(t, "54", eye)
	assert.Empty(t, bridge)
	assert.Empty(t, temple)

	eye, bridge, temple = SizeTriplet("one size")
	assert.Empty(t, eye+bridge+temple)
}

func TestUnwrapLink(t *testing.T) {
	t.Parallel()

	wrapped := "https://nam12.safelinks.protection.outlook.com/?url=https%3A%2F%2Fimg.safilo.com%2Fstyles%2F00882663450138.jpg&data=ignored"
	assert.Equal(t, "https://img.safilo.com/styles/00882663450138.jpg", UnwrapLink(wrapped))

	plain := "https://img.safilo.com/styles/00882663450138.jpg"
	assert.Equal(t, plain, UnwrapLink(plain))
}

func TestUPCFromImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"plain image url",
			"https://img.safilo.com/styles/00882663450138.jpg",
			"00882663450138",
		},
		{
			"safelinks wrapped",
			"https://nam12.safelinks.protection.outlook.com/?url=https%3A%2F%2Fimg.safilo.com%2Fstyles%2F00882663450138.jpg",
			"00882663450138",
		},
		{
			"percent-encoded path",
			"https://img.safilo.com/styles%2F00882663450138.png",
			"00882663450138",
		},
		{
			"segment is not a upc",
			"https://img.safilo.com/styles/logo.png",
			"",
		},
		{
			"too short",
			"https://img.safilo.com/styles/12345.jpg",
			"",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, UPCFromImageURL(tt.in))
		})
	}
}

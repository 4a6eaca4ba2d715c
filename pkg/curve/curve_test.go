package curve_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snehendu098/ghost/wallet/pkg/curve"
)

func leUint(v uint64) []byte {
	b := make([]byte, curve.PointSize)
	for i := 0; v > 0; i++ {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func TestCurveParams(t *testing.T) {
	params := twistededwards.GetEdwardsCurve()
	assert.Equal(t, 0, params.Order.Cmp(curve.Order()), "subgroup order must match gnark-crypto")
	assert.Equal(t, uint64(3021), params.D.Uint64())
	assert.Equal(t, 251, curve.Order().BitLen())
}

func TestGenerator(t *testing.T) {
	g := curve.Generator()
	require.True(t, g.InSubgroup())
	assert.False(t, g.IsIdentity())

	x := g.Bytes()
	assert.Equal(t, "ebd4a70ef8269e6308e1d35479ca2d54832c4b1b8a714536712e2d8855d32701", hex.EncodeToString(x[:]))

	twoG := g.Add(g)
	x2 := twoG.Bytes()
	assert.Equal(t, "bb8d7de039529e5fb8b7ebafdfde2579728eae4882735d9a61a992f55acf6701", hex.EncodeToString(x2[:]))
	assert.True(t, twoG.Equal(curve.BaseMul(big.NewInt(2))))

	assert.True(t, curve.BaseMul(curve.Order()).IsIdentity())
	assert.True(t, curve.BaseMul(big.NewInt(0)).Equal(curve.Identity()))
}

func TestPointArithmetic(t *testing.T) {
	a := big.NewInt(7)
	b := big.NewInt(11)
	pa := curve.BaseMul(a)
	pb := curve.BaseMul(b)

	assert.True(t, pa.Add(pb).Equal(curve.BaseMul(big.NewInt(18))))
	assert.True(t, pa.Add(pa.Neg()).IsIdentity())
	assert.True(t, pa.Mul(b).Equal(pb.Mul(a)))
	assert.True(t, pa.Add(curve.Identity()).Equal(pa))
}

func TestPointFromBytes(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, k := range []int64{1, 2, 3, 1000, 123456789} {
			p := curve.BaseMul(big.NewInt(k))
			enc := p.Bytes()
			decoded, err := curve.PointFromBytes(enc[:])
			require.NoError(t, err)
			assert.True(t, decoded.Equal(p), "k=%d", k)
		}
	})

	t.Run("subgroup root is selected", func(t *testing.T) {
		p, err := curve.PointFromBytes(leUint(2))
		require.NoError(t, err)
		assert.True(t, p.InSubgroup())
		enc := p.Bytes()
		assert.Equal(t, leUint(2), enc[:])
	})

	testCases := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{"short", make([]byte, 31), curve.ErrInvalidLength},
		{"long", make([]byte, 33), curve.ErrInvalidLength},
		{"modulus", func() []byte {
			b := make([]byte, 32)
			be := curve.FieldModulus().Bytes()
			for i := range be {
				b[i] = be[len(be)-1-i]
			}
			return b
		}(), curve.ErrNonCanonical},
		{"all ones", bytes.Repeat([]byte{0xff}, 32), curve.ErrNonCanonical},
		{"no square root", leUint(1), curve.ErrNotOnCurve},
		{"outside subgroup", leUint(9), curve.ErrNotInSubgroup},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := curve.PointFromBytes(tc.input)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestScalarCodec(t *testing.T) {
	k := big.NewInt(0x0102)
	enc := curve.ScalarToBytes(k)
	assert.Equal(t, byte(0x02), enc[0])
	assert.Equal(t, byte(0x01), enc[1])

	decoded, err := curve.ScalarFromBytes(enc[:])
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Cmp(k))

	n := curve.ScalarToBytes(curve.Order())
	_, err = curve.ScalarFromBytes(n[:])
	assert.ErrorIs(t, err, curve.ErrNonCanonical)

	_, err = curve.ScalarFromBytes(enc[:31])
	assert.ErrorIs(t, err, curve.ErrInvalidLength)

	sum := curve.AddScalars(curve.Order(), big.NewInt(5), big.NewInt(-2))
	assert.Equal(t, int64(3), sum.Int64())
}

func TestHashToScalar(t *testing.T) {
	k := curve.HashToScalar("test", []byte("abc"))
	enc := curve.ScalarToBytes(k)
	assert.Equal(t, "d9c29ae2791d2a333f5499cf51a73780d134d0b5b8a446d1cfe5e3df000bb800", hex.EncodeToString(enc[:]))

	// parts are concatenated, the domain is length-prefixed
	assert.Equal(t, 0, k.Cmp(curve.HashToScalar("test", []byte("a"), []byte("bc"))))
	assert.NotEqual(t, 0, k.Cmp(curve.HashToScalar("tes", []byte("tabc"))))
	assert.Negative(t, k.Cmp(curve.Order()))
}

func TestSeededReader(t *testing.T) {
	testCases := []struct {
		seed uint64
		want string
	}{
		{12345, "7c8aa82335e50a487c687d151b3dde61a661f039fa1ae991cedaee4fc1bddb41"},
		{0, "b2f7f581d6de3c06a822fd6e7e8265fbc00f8401696a5bdc34f5a6d2ff3f922f"},
	}
	for _, tc := range testCases {
		buf := make([]byte, 32)
		_, err := io.ReadFull(curve.NewSeededReader(tc.seed), buf)
		require.NoError(t, err)
		assert.Equal(t, tc.want, hex.EncodeToString(buf), "seed %d", tc.seed)
	}

	// chunked reads continue the same stream
	whole := make([]byte, 96)
	_, err := io.ReadFull(curve.NewSeededReader(7), whole)
	require.NoError(t, err)
	r := curve.NewSeededReader(7)
	chunked := make([]byte, 0, 96)
	for _, size := range []int{5, 27, 64} {
		part := make([]byte, size)
		_, err := io.ReadFull(r, part)
		require.NoError(t, err)
		chunked = append(chunked, part...)
	}
	assert.Equal(t, whole, chunked)
}

func TestSampleScalar(t *testing.T) {
	k, err := curve.SampleScalar(curve.NewSeededReader(12345))
	require.NoError(t, err)
	enc := curve.ScalarToBytes(k)
	assert.Equal(t, "a0c776ee4361ccd72efa04331ffe0cb6f0dbf40339f224bb60d9330c2ce16201", hex.EncodeToString(enc[:]))

	again, err := curve.SampleScalar(curve.NewSeededReader(12345))
	require.NoError(t, err)
	assert.Equal(t, 0, k.Cmp(again))

	t.Run("rejects out of range candidates", func(t *testing.T) {
		// first candidate masks to 2^251-1 which is >= n, second is 1
		rejected := bytes.Repeat([]byte{0xff}, 32)
		accepted := leUint(1)
		k, err := curve.SampleScalar(bytes.NewReader(append(rejected, accepted...)))
		require.NoError(t, err)

		want := new(big.Int).Lsh(big.NewInt(1), 256)
		want.ModInverse(want.Mod(want, curve.Order()), curve.Order())
		assert.Equal(t, 0, k.Cmp(want))
	})

	t.Run("short source", func(t *testing.T) {
		_, err := curve.SampleScalar(bytes.NewReader(make([]byte, 10)))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

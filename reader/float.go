package reader

import (
	"math"
	"strconv"
	"strings"

	"github.com/skdltmxn/smsinspect/internal/bigendian"
)

// Float reads a single precision float.
var Float Reader = &Scalar[float32]{bigendian.F32, func(v float32) Value {
	return number(FormatFloat(v), float64(v))
}}

// FormatFloat renders x in fixed notation when 1e-4 <= |x| < 1e8 or
// x is zero, always with a decimal point, and in scientific notation
// otherwise ("1e10", "-2.5e-6").
func FormatFloat(x float32) string {
	f := float64(x)
	m := float32(math.Abs(f))
	switch {
	case m == 0 || (m >= 1e-4 && m < 1e8):
		s := strconv.FormatFloat(f, 'f', -1, 32)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 32), "e")
	if n, err := strconv.Atoi(exp); err == nil {
		exp = strconv.Itoa(n)
	}
	return mant + "e" + exp
}

package metrics

import "math"

// igamc computes the regularized upper incomplete gamma function
// Q(a, x) = Γ(a, x)/Γ(a), the survival function of the gamma
// distribution. The chi-square p-value for statistic x with df degrees
// of freedom is igamc(df/2, x/2).
//
// Series expansion for x < a+1, Lentz continued fraction otherwise.
func igamc(a, x float64) float64 {
	if x < 0 || a <= 0 {
		return math.NaN()
	}
	if x == 0 {
		return 1
	}
	if x < a+1 {
		return 1 - igamSeries(a, x)
	}
	return igamcFraction(a, x)
}

func igamSeries(a, x float64) float64 {
	lg, _ := math.Lgamma(a)
	ap := a
	sum := 1.0 / a
	del := sum
	for i := 0; i < 500; i++ {
		ap++
		del *= x / ap
		sum += del
		if math.Abs(del) < math.Abs(sum)*1e-15 {
			break
		}
	}
	return sum * math.Exp(-x+a*math.Log(x)-lg)
}

func igamcFraction(a, x float64) float64 {
	const tiny = 1e-30
	lg, _ := math.Lgamma(a)

	b := x + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i < 500; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < 1e-15 {
			break
		}
	}
	return math.Exp(-x+a*math.Log(x)-lg) * h
}

// chiSquareP returns P(X² ≥ stat) for df degrees of freedom.
func chiSquareP(stat float64, df int) float64 {
	return igamc(float64(df)/2, stat/2)
}

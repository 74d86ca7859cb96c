package app

import (
	"errors"
	"testing"

	"reddlag/domain/core"
	"reddlag/domain/series"
)

func mustCovariate(t *testing.T, key core.CovariateKey, points ...series.AnnualValue) series.Covariate {
	t.Helper()
	cov, err := series.NewCovariate(key, points)
	if err != nil {
		t.Fatalf("NewCovariate failed: %v", err)
	}
	return cov
}

func TestLagColumnKey(t *testing.T) {
	if got := LagColumnKey("min_pool_af", 0); got != "min_pool_af" {
		t.Errorf("lag 0 must keep the covariate key, got %q", got)
	}
	if got := LagColumnKey("min_pool_af", 2); got != "min_pool_af_lag2" {
		t.Errorf("unexpected lag key %q", got)
	}
}

func TestAttachLags_ShiftsByYear(t *testing.T) {
	frame := series.NewFrame([]core.Year{2002})
	cov := mustCovariate(t, "min_pool_af",
		series.AnnualValue{Year: 2000, Value: 100},
		series.AnnualValue{Year: 2001, Value: 200},
	)

	out, err := AttachLags(frame, cov, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("AttachLags failed: %v", err)
	}

	lag1, _ := out.Column("min_pool_af_lag1")
	lag2, _ := out.Column("min_pool_af_lag2")
	lag3, _ := out.Column("min_pool_af_lag3")

	if lag1[0] != 200 {
		t.Errorf("2002 at lag 1 should read the 2001 value 200, got %v", lag1[0])
	}
	if lag2[0] != 100 {
		t.Errorf("2002 at lag 2 should read the 2000 value 100, got %v", lag2[0])
	}
	if !series.IsMissing(lag3[0]) {
		t.Errorf("2002 at lag 3 has no 1999 observation and must be missing, got %v", lag3[0])
	}
}

func TestAttachLags_LagZeroJoinsSameYear(t *testing.T) {
	frame := series.NewFrame([]core.Year{2000, 2001})
	cov := mustCovariate(t, "swe_apr",
		series.AnnualValue{Year: 2000, Value: 31.5},
		series.AnnualValue{Year: 2001, Value: 22.0},
	)

	out, err := AttachLags(frame, cov, []int{0})
	if err != nil {
		t.Fatalf("AttachLags failed: %v", err)
	}
	col, ok := out.Column("swe_apr")
	if !ok {
		t.Fatal("lag 0 column should carry the covariate's own key")
	}
	if col[0] != 31.5 || col[1] != 22.0 {
		t.Errorf("unexpected lag 0 values %v", col)
	}
}

func TestAttachLags_IsPureAndIdempotent(t *testing.T) {
	frame := series.NewFrame([]core.Year{2001, 2002})
	cov := mustCovariate(t, "min_pool_af",
		series.AnnualValue{Year: 2000, Value: 100},
		series.AnnualValue{Year: 2001, Value: 200},
	)

	once, err := AttachLags(frame, cov, []int{1})
	if err != nil {
		t.Fatalf("AttachLags failed: %v", err)
	}
	if frame.HasColumn("min_pool_af_lag1") {
		t.Error("input frame was mutated by the join")
	}

	twice, err := AttachLags(once, cov, []int{1})
	if err != nil {
		t.Fatalf("repeated AttachLags failed: %v", err)
	}
	if len(twice.ColumnNames()) != len(once.ColumnNames()) {
		t.Errorf("repeated identical join added columns: %v", twice.ColumnNames())
	}
	a, _ := once.Column("min_pool_af_lag1")
	b, _ := twice.Column("min_pool_af_lag1")
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("repeated join changed values at row %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestAttachLags_JoinsCommute(t *testing.T) {
	frame := series.NewFrame([]core.Year{2001})
	pool := mustCovariate(t, "min_pool_af", series.AnnualValue{Year: 2001, Value: 55000})
	swe := mustCovariate(t, "swe_apr", series.AnnualValue{Year: 2001, Value: 28})

	ab, err := AttachLags(frame, pool, []int{0})
	if err != nil {
		t.Fatal(err)
	}
	ab, err = AttachLags(ab, swe, []int{0})
	if err != nil {
		t.Fatal(err)
	}

	ba, err := AttachLags(frame, swe, []int{0})
	if err != nil {
		t.Fatal(err)
	}
	ba, err = AttachLags(ba, pool, []int{0})
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"min_pool_af", "swe_apr"} {
		x, _ := ab.Column(key)
		y, _ := ba.Column(key)
		if x[0] != y[0] {
			t.Errorf("%s differs across join orders: %v vs %v", key, x[0], y[0])
		}
	}
}

func TestAttachLags_NegativeLagRejected(t *testing.T) {
	frame := series.NewFrame([]core.Year{2001})
	cov := mustCovariate(t, "min_pool_af", series.AnnualValue{Year: 2001, Value: 1})

	_, err := AttachLags(frame, cov, []int{-1})
	if !errors.Is(err, core.ErrNegativeLag) {
		t.Errorf("expected ErrNegativeLag, got %v", err)
	}
}

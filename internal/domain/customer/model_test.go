package customer

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestCustomer_FullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Anna", "Lee", "Anna Lee"},
		{"", "Lee", "Lee"},
		{"Anna", "", "Anna"},
		{"", "", ""},
	}
	for _, tc := range cases {
		c := &Customer{FirstName: tc.first, LastName: tc.last}
		if got := c.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestCustomer_Matches(t *testing.T) {
	c := &Customer{FirstName: "Jürgen", LastName: "Groß", Phone: "+49 30 1234"}
	for _, kw := range []string{"", "  ", "jür", "GRO", "jürgen groß", "1234"} {
		if !c.Matches(kw) {
			t.Errorf("expected %q to match", kw)
		}
	}
	for _, kw := range []string{"anna", "999"} {
		if c.Matches(kw) {
			t.Errorf("expected %q not to match", kw)
		}
	}
}

func TestTherapy_Owed(t *testing.T) {
	th := line("2024-01-01", "a", "20", "100", "15")
	if got := th.Owed(); !got.Equal(money("65")) {
		t.Errorf("expected 65, got %s", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]*Therapy{
		line("2024-01-01", "a", "0", "100", "10"),
		line("2024-01-02", "b", "30", "0", "0"),
	})
	if !s.Balance.Equal(money("60")) {
		t.Errorf("expected balance 60, got %s", s.Balance)
	}
	if !s.Payments.Equal(money("30")) {
		t.Errorf("expected payments 30, got %s", s.Payments)
	}
	if !s.Costs.Equal(money("100")) {
		t.Errorf("expected costs 100, got %s", s.Costs)
	}
	if !s.Discounts.Equal(money("10")) {
		t.Errorf("expected discounts 10, got %s", s.Discounts)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if !s.Balance.IsZero() || !s.Payments.IsZero() || !s.Costs.IsZero() || !s.Discounts.IsZero() {
		t.Errorf("expected all zero totals, got %+v", s)
	}
}

func TestSummarize_Overpaid(t *testing.T) {
	s := Summarize([]*Therapy{line("2024-01-01", "a", "150", "100", "0")})
	if !s.Balance.Equal(money("-50")) {
		t.Errorf("expected credit of -50, got %s", s.Balance)
	}
}

func TestSummarizeByCustomer(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	t1 := line("2024-01-01", "a", "0", "40", "0")
	t1.CustomerID = a
	t2 := line("2024-01-02", "b", "10", "0", "0")
	t2.CustomerID = a
	t3 := line("2024-01-01", "c", "0", "7.50", "0")
	t3.CustomerID = b

	sums := SummarizeByCustomer([]*Therapy{t1, t2, t3})
	if !sums[a].Balance.Equal(money("30")) {
		t.Errorf("expected 30 for a, got %s", sums[a].Balance)
	}
	if !sums[b].Balance.Equal(money("7.5")) {
		t.Errorf("expected 7.5 for b, got %s", sums[b].Balance)
	}

	customers := []*Customer{{ID: a}, {ID: b}, {ID: uuid.New()}}
	attachBalances(customers, sums)
	if customers[2].Balance == nil || !customers[2].Balance.IsZero() {
		t.Errorf("expected zero balance for customer without ledger, got %v", customers[2].Balance)
	}
}

func TestTherapy_JSONMoney(t *testing.T) {
	var th Therapy
	body := `{"visit_date":"2024-01-01","payment":"12.50","cost":40,"discount":"0"}`
	if err := json.Unmarshal([]byte(body), &th); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !th.Payment.Equal(money("12.5")) || !th.Cost.Equal(money("40")) {
		t.Errorf("unexpected money values: payment=%s cost=%s", th.Payment, th.Cost)
	}
}

func TestSummarize_TwoVisits(t *testing.T) {
	s := Summarize([]*Therapy{
		line("2024-01-01", "crown", "40", "100", "0"),
		line("2024-01-08", "check-up", "50", "50", "0"),
	})
	if !s.Balance.Equal(money("60")) {
		t.Errorf("expected balance 60, got %s", s.Balance)
	}
}

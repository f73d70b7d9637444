package report

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/officedesk/officedesk/internal/domain/customer"
	"github.com/officedesk/officedesk/internal/domain/doctor"
)

func testCustomer() *customer.Customer {
	return &customer.Customer{
		FirstName:      "Anna",
		LastName:       "Lee",
		Phone:          "555-1234",
		Address:        "Main St 1",
		BirthDate:      "1980-02-03",
		RegisterDate:   "2020-01-01",
		LastVisitDate:  "2024-03-01",
		Referral:       "Dr. Smith",
		MedicalHistory: "penicillin allergy",
		ExtraInfo:      "prefers mornings",
	}
}

func testTherapies() []*customer.Therapy {
	return []*customer.Therapy{
		{VisitDate: "2024-01-01", Tooth: "16", Description: "crown",
			Payment: decimal.RequireFromString("40"), Cost: decimal.RequireFromString("100")},
		{VisitDate: "2024-01-08", Description: "check-up",
			Payment: decimal.RequireFromString("50"), Cost: decimal.RequireFromString("50")},
	}
}

func testProfile() *doctor.Profile {
	return &doctor.Profile{FirstName: "Maria", LastName: "Papas", Speciality: "Orthodontics", Address: "Clinic Rd 2", Telephone: "555-9000"}
}

func TestBuild_AllFieldsByDefault(t *testing.T) {
	s, err := Build(testCustomer(), testTherapies(), testProfile(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "Anna Lee" {
		t.Errorf("expected title 'Anna Lee', got %q", s.Title)
	}
	if len(s.Fields) != len(FieldNames()) {
		t.Fatalf("expected %d fields, got %d", len(FieldNames()), len(s.Fields))
	}
	for i, name := range FieldNames() {
		if s.Fields[i].Key != name {
			t.Errorf("field %d: expected %s, got %s", i, name, s.Fields[i].Key)
		}
	}
	if s.Fields[6].Value != "penicillin allergy" {
		t.Errorf("expected medical history value, got %q", s.Fields[6].Value)
	}
}

func TestBuild_SelectedFieldsKeepFixedOrder(t *testing.T) {
	s, err := Build(testCustomer(), nil, nil, []string{"extra_info", "phone", "phone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Fields) != 2 || s.Fields[0].Key != "phone" || s.Fields[1].Key != "extra_info" {
		t.Errorf("unexpected fields: %+v", s.Fields)
	}
}

func TestBuild_UnknownField(t *testing.T) {
	_, err := Build(testCustomer(), nil, nil, []string{"phone", "shoe_size"})
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestBuild_Totals(t *testing.T) {
	s, _ := Build(testCustomer(), testTherapies(), nil, nil)
	if s.Totals.Balance != "60.00" {
		t.Errorf("expected balance 60.00, got %s", s.Totals.Balance)
	}
	if s.Totals.Payments != "90.00" || s.Totals.Costs != "150.00" || s.Totals.Discounts != "0.00" {
		t.Errorf("unexpected totals: %+v", s.Totals)
	}
	if len(s.Lines) != 2 || s.Lines[0].Cost != "100.00" {
		t.Errorf("unexpected lines: %+v", s.Lines)
	}
}

func TestBuild_Doctor(t *testing.T) {
	s, _ := Build(testCustomer(), nil, nil, nil)
	if s.Doctor != nil {
		t.Error("expected no doctor footer without a profile")
	}
	s, _ = Build(testCustomer(), nil, testProfile(), nil)
	if s.Doctor == nil || s.Doctor.Name != "Maria Papas" || s.Doctor.Telephone != "555-9000" {
		t.Errorf("unexpected doctor footer: %+v", s.Doctor)
	}
}

func TestParseFields(t *testing.T) {
	got := ParseFields(" phone, ,address,")
	if len(got) != 2 || got[0] != "phone" || got[1] != "address" {
		t.Errorf("unexpected fields: %v", got)
	}
	if ParseFields("") != nil {
		t.Error("expected nil for an empty list")
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	s, _ := Build(testCustomer(), nil, nil, nil)
	if err := Write(io.Discard, s, "docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := ContentType("docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteHTML(t *testing.T) {
	c := testCustomer()
	c.ExtraInfo = "<script>alert(1)</script>"
	s, _ := Build(c, testTherapies(), testProfile(), nil)

	var buf bytes.Buffer
	if err := WriteHTML(&buf, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<h1>Anna Lee</h1>", "crown", "60.00", "Maria Papas", "Orthodontics"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected HTML to contain %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("customer text must be escaped")
	}
}

func TestWritePDF(t *testing.T) {
	c := testCustomer()
	c.FirstName = "Jürgen"
	s, _ := Build(c, testTherapies(), testProfile(), nil)

	var buf bytes.Buffer
	if err := WritePDF(&buf, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:8])
	}
}

func TestWriteXLSX(t *testing.T) {
	s, _ := Build(testCustomer(), testTherapies(), testProfile(), []string{"phone"})

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}

	var content strings.Builder
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "xl/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, _ := io.ReadAll(rc)
		rc.Close()
		content.Write(b)
	}
	for _, want := range []string{SheetName, "Anna Lee", "555-1234", "crown", "60.00"} {
		if !strings.Contains(content.String(), want) {
			t.Errorf("expected workbook to contain %q", want)
		}
	}
}

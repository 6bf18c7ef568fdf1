package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/raroc-pricing/internal/cache"
	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, repo cache.Repository) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), 1024*1024, "test", repo)
}

func postSchedule(t *testing.T, handler http.Handler, params cashflow.LoanParameters) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleSchedule(t *testing.T) {
	handler := newTestHandler(t, nil)

	rec := postSchedule(t, handler, cashflow.LoanParameters{
		Principal:    1000000,
		AnnualRate:   6.5,
		TermMonths:   100,
		FTPRate:      2.3,
		DiscountRate: 2.5,
		NIIFee:       100,
		NIIMonths:    50,
		NIEAmount:    200,
		LoanID:       "LOAN-001",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		MonthlyPayment float64                    `json:"monthlyPayment"`
		Rows           []cashflow.AmortizationRow `json:"rows"`
		Summary        cashflow.SummaryMetrics    `json:"summary"`
		CSV            string                     `json:"csv"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Rows) != 100 {
		t.Errorf("response has %d rows, expected 100", len(resp.Rows))
	}
	if resp.MonthlyPayment < 12978 || resp.MonthlyPayment > 12979 {
		t.Errorf("monthly payment = %.2f, expected ~12978.06", resp.MonthlyPayment)
	}
	if resp.Summary.TotalNonInterestIncome != 5000 {
		t.Errorf("total non-interest income = %.2f, expected 5000", resp.Summary.TotalNonInterestIncome)
	}
	if !strings.HasPrefix(resp.CSV, "Month,Beginning_Balance,") {
		t.Errorf("CSV payload missing header: %q", resp.CSV[:40])
	}
}

func TestHandleScheduleInvalidInput(t *testing.T) {
	handler := newTestHandler(t, nil)

	rec := postSchedule(t, handler, cashflow.LoanParameters{
		Principal:  100000,
		AnnualRate: 5.0,
		TermMonths: 0,
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400; body: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp["error"], "invalid input") {
		t.Errorf("error = %q, expected invalid input", resp["error"])
	}
}

func TestHandleScheduleMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
}

func TestHandleScheduleUsesCache(t *testing.T) {
	repo := cache.NewMemoryCache()
	handler := newTestHandler(t, repo)

	params := cashflow.LoanParameters{
		Principal:    500000,
		AnnualRate:   5.5,
		TermMonths:   60,
		DiscountRate: 2.0,
		LoanID:       "LOAN-CACHE",
	}

	first := postSchedule(t, handler, params)
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d; body: %s", first.Code, first.Body.String())
	}

	key, err := cache.Key(params)
	if err != nil {
		t.Fatalf("cache.Key() unexpected error: %v", err)
	}
	if _, ok := repo.Get(context.Background(), key); !ok {
		t.Fatal("schedule was not cached after first request")
	}

	second := postSchedule(t, handler, params)
	if second.Code != http.StatusOK {
		t.Fatalf("second request status = %d; body: %s", second.Code, second.Body.String())
	}

	var firstResp, secondResp struct {
		Summary cashflow.SummaryMetrics `json:"summary"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("failed to decode first response: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("failed to decode second response: %v", err)
	}
	if firstResp.Summary != secondResp.Summary {
		t.Errorf("cached response differs from computed response")
	}
}

func TestHandleUpload(t *testing.T) {
	handler := newTestHandler(t, nil)

	csvData := "Loan_ID,Principal,Annual_Rate,Term_Months,FTP_Rate,Discount_Rate,NII_Fee,NII_Months,NIE_Amount,PD_Rating,LGD_Grade,Zip_Code\n" +
		"LOAN-001,1000000,6.5,100,2.3,2.5,100,50,200,5,C,45208\n" +
		"LOAN-002,250000,4.0,60,1.8,2.0,0,0,50,3,B,10001\n"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "loans.csv")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(csvData)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/schedule/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []struct {
			Loan cashflow.LoanParameters    `json:"loan"`
			Rows []cashflow.AmortizationRow `json:"rows"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, expected 2", len(resp.Results))
	}
	if resp.Results[0].Loan.LoanID != "LOAN-001" || len(resp.Results[0].Rows) != 100 {
		t.Errorf("first result = %q with %d rows, expected LOAN-001 with 100 rows",
			resp.Results[0].Loan.LoanID, len(resp.Results[0].Rows))
	}
	if resp.Results[1].Loan.LoanID != "LOAN-002" || len(resp.Results[1].Rows) != 60 {
		t.Errorf("second result = %q with %d rows, expected LOAN-002 with 60 rows",
			resp.Results[1].Loan.LoanID, len(resp.Results[1].Rows))
	}
}

func TestHandleRatings(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var resp struct {
		PDScale []struct {
			Rating int     `json:"rating"`
			PD     float64 `json:"pd"`
		} `json:"pdScale"`
		LGDScale []struct {
			Grade string  `json:"grade"`
			LGD   float64 `json:"lgd"`
		} `json:"lgdScale"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.PDScale) != 13 {
		t.Errorf("pdScale has %d entries, expected 13", len(resp.PDScale))
	}
	if len(resp.LGDScale) != 8 {
		t.Errorf("lgdScale has %d entries, expected 8", len(resp.LGDScale))
	}
	if resp.PDScale[0].Rating != 1 || resp.PDScale[0].PD != 0.0010 {
		t.Errorf("pdScale[0] = %+v, expected rating 1 with pd 0.001", resp.PDScale[0])
	}
	if resp.LGDScale[7].Grade != "H" || resp.LGDScale[7].LGD != 0.90 {
		t.Errorf("lgdScale[7] = %+v, expected grade H with lgd 0.9", resp.LGDScale[7])
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %q, expected test", resp["version"])
	}
}

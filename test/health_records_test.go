package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

func (s *IntegrationTestSuite) postRecord(body string) *http.Response {
	req, err := http.NewRequest("POST", serverEndpoint+"/health/records", bytes.NewBufferString(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *IntegrationTestSuite) getJSON(path string, target any) int {
	resp, err := s.httpClient.Get(serverEndpoint + path)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if resp.StatusCode == http.StatusOK && target != nil {
		s.Require().NoError(json.Unmarshal(respBytes, target))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) TestIngestAndList() {
	for _, body := range []string{
		`{"date":"2025-01-01","steps":"5000"}`,
		`{"date":"2025-01-02T21:15:00Z","steps":7000,"weight":"70.5"}`,
	} {
		resp := s.postRecord(body)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		s.Require().NoError(resp.Body.Close())
	}

	// invalid date is rejected and nothing is stored
	resp := s.postRecord(`{"date":"not-a-date","steps":"5000"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Require().NoError(resp.Body.Close())

	var records []map[string]string
	s.Require().Equal(http.StatusOK, s.getJSON("/health/records", &records))
	s.Equal([]map[string]string{
		{"date": "2025-01-01", "steps": "5000"},
		{"date": "2025-01-02", "steps": "7000", "weight": "70.5"},
	}, records)
}

func (s *IntegrationTestSuite) TestDashboard() {
	today := time.Now().UTC().Format("2006-01-02")
	longAgo := time.Now().UTC().AddDate(-2, 0, 0).Format("2006-01-02")

	for _, body := range []string{
		`{"date":"` + longAgo + `","heartRate":"80"}`,
		`{"date":"` + today + `","heartRate":"60","steps":"100"}`,
		`{"date":"` + today + `","steps":"300"}`,
	} {
		resp := s.postRecord(body)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		s.Require().NoError(resp.Body.Close())
	}

	var dashboard struct {
		Window  string `json:"window"`
		Metric  string `json:"metric"`
		Summary struct {
			Count   int      `json:"count"`
			NoData  bool     `json:"noData"`
			Average *float64 `json:"average"`
		} `json:"summary"`
		Chart struct {
			Labels []string `json:"labels"`
		} `json:"chart"`
	}
	s.Require().Equal(http.StatusOK, s.getJSON("/health/dashboard?window=1m&metric=heartRate", &dashboard))
	s.Equal("1m", dashboard.Window)
	s.Equal("heartRate", dashboard.Metric)
	s.Equal(1, dashboard.Summary.Count)
	s.Require().NotNil(dashboard.Summary.Average)
	s.Equal(60.0, *dashboard.Summary.Average)
	// the record without a heart rate is still a (zero) point on the chart
	s.Len(dashboard.Chart.Labels, 2)

	s.Require().Equal(http.StatusOK, s.getJSON("/health/dashboard?window=all&metric=heartRate", &dashboard))
	s.Equal(2, dashboard.Summary.Count)
	s.Equal(70.0, *dashboard.Summary.Average)

	s.Equal(http.StatusBadRequest, s.getJSON("/health/dashboard?window=2w", nil))

	var overview struct {
		Count     int `json:"count"`
		Summaries []struct {
			Metric string `json:"metric"`
			NoData bool   `json:"noData"`
		} `json:"summaries"`
	}
	s.Require().Equal(http.StatusOK, s.getJSON("/health/overview?window=7d", &overview))
	s.Equal(2, overview.Count)
	s.Require().Len(overview.Summaries, 3)
	s.False(overview.Summaries[0].NoData)
	s.True(overview.Summaries[1].NoData)
	s.False(overview.Summaries[2].NoData)
}

func (s *IntegrationTestSuite) TestIngestRateLimited() {
	for i := 0; i < testIngestRateLimitPerMin; i++ {
		resp := s.postRecord(`{"date":"2025-01-01","steps":"1"}`)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		s.Require().NoError(resp.Body.Close())
	}

	resp := s.postRecord(`{"date":"2025-01-01","steps":"1"}`)
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	s.Require().NoError(resp.Body.Close())

	// reads are not limited
	var records []map[string]string
	s.Require().Equal(http.StatusOK, s.getJSON("/health/records", &records))
	s.Len(records, testIngestRateLimitPerMin)
}

func (s *IntegrationTestSuite) TestVersion() {
	resp, err := s.httpClient.Get(serverEndpoint + "/version")
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("test-version-info", string(body))
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQuery_ValuesOnlySetFields(t *testing.T) {
	f := false
	q := Query{Release: "2.1", Published: &f, Name: "acorn"}
	got := q.Values().Encode()
	want := "name=acorn&published=false&release=2.1"
	if got != want {
		t.Fatalf("期望 %q，实际 %q", want, got)
	}

	if enc := (Query{}).Values().Encode(); enc != "" {
		t.Fatalf("零值 Query 不应产生参数，实际 %q", enc)
	}
}

func TestClient_URL(t *testing.T) {
	c := Client{BaseURL: "https://api.example.test"}
	if got := c.URL(Query{}); got != "https://api.example.test" {
		t.Fatalf("实际 %q", got)
	}
	if got := c.URL(Query{Query: "arrow up"}); got != "https://api.example.test?query=arrow+up" {
		t.Fatalf("实际 %q", got)
	}
	if got := (Client{}).URL(Query{}); got != DefaultBaseURL {
		t.Fatalf("期望默认地址，实际 %q", got)
	}
}

func TestClient_Fetch_DecodesEnvelope(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"icons":[{"name":"acorn","category":"Nature","codepoint":57344,"published_in":1.4,"updated_in":2.0,"tags":["nut"],"search_categories":["nature"],"status":"Implemented"}],"count":1,"version":2.0}`))
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, HTTP: srv.Client()}
	r, err := c.Fetch(context.Background(), Query{Release: "2.0"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if gotQuery != "release=2.0" {
		t.Fatalf("期望 query=release=2.0，实际 %q", gotQuery)
	}
	if r.Count != 1 || len(r.Icons) != 1 || r.Version != 2.0 {
		t.Fatalf("信封解码不正确：%+v", r)
	}
	ic := r.Icons[0]
	if ic.Name != "acorn" || ic.Codepoint == nil || *ic.Codepoint != 57344 {
		t.Fatalf("记录解码不正确：%+v", ic)
	}
	if ic.PublishedIn == nil || *ic.PublishedIn != 1.4 {
		t.Fatalf("published_in 解码不正确：%v", ic.PublishedIn)
	}
}

func TestClient_Fetch_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"message":"invalid release"}`))
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, HTTP: srv.Client()}
	_, err := c.Fetch(context.Background(), Query{Release: "x"})

	var hs *HTTPStatusError
	if !errors.As(err, &hs) {
		t.Fatalf("期望 HTTPStatusError，实际 %v", err)
	}
	if hs.StatusCode != http.StatusBadRequest || hs.Message != "invalid release" {
		t.Fatalf("HTTPStatusError 不符合预期：%+v", hs)
	}
}

func TestClient_Fetch_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, HTTP: srv.Client()}
	if _, err := c.Fetch(context.Background(), Query{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("期望 ErrNoData，实际 %v", err)
	}
}

func TestClient_Fetch_NilHTTPClient(t *testing.T) {
	if _, err := (Client{}).Fetch(context.Background(), Query{}); err == nil {
		t.Fatalf("期望错误，但得到 nil")
	}
}

func TestErrorMessage_NonJSON(t *testing.T) {
	if got := errorMessage([]byte("  bad gateway \n")); got != "bad gateway" {
		t.Fatalf("期望 %q，实际 %q", "bad gateway", got)
	}
	if got := errorMessage([]byte(`{"error":{"message":"nope"}}`)); got != "nope" {
		t.Fatalf("期望 nope，实际 %q", got)
	}
}

func TestDecode_NullIsNoData(t *testing.T) {
	if _, err := Decode([]byte(" null\n")); !errors.Is(err, ErrNoData) {
		t.Fatalf("期望 ErrNoData，实际 %v", err)
	}
}

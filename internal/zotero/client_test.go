package zotero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestItemsPaginatesAndReadsVersion(t *testing.T) {
	const pageLimit = 100
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/groups/777/items" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Zotero-API-Key"); got != "secret" {
			t.Errorf("api key header = %q", got)
		}
		if got := r.Header.Get("Zotero-API-Version"); got != "3" {
			t.Errorf("api version header = %q", got)
		}
		q := r.URL.Query()
		if q.Get("since") != "10" || q.Get("format") != "json" || q.Get("includeTrashed") != "1" {
			t.Errorf("query = %v", q)
		}

		start, _ := strconv.Atoi(q.Get("start"))
		w.Header().Set("Last-Modified-Version", "42")

		count := pageLimit
		if start >= pageLimit {
			count = 5
		}
		page := make([]Item, count)
		for i := range page {
			page[i] = Item{Key: fmt.Sprintf("KEY%04d", start+i), Version: 11}
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "1")
	chunks, version, err := c.Items(context.Background(), "777", 10)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(chunks) != 2 || len(chunks[0]) != pageLimit || len(chunks[1]) != 5 {
		t.Errorf("chunk shape wrong: %d chunks", len(chunks))
	}
	if version != 42 {
		t.Errorf("version = %d, want 42", version)
	}
}

func TestItemsEmptyLibrary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Last-Modified-Version", "10")
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "1")
	chunks, version, err := c.Items(context.Background(), "777", 10)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("chunks = %d, want none", len(chunks))
	}
	if version != 10 {
		t.Errorf("version = %d, want 10", version)
	}
}

func TestCollectionsParsesParentVariants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"key":"ROOT","version":3,"data":{"key":"ROOT","version":3,"name":"Root","parentCollection":false}},
			{"key":"CHILD","version":3,"data":{"key":"CHILD","version":3,"name":"Child","parentCollection":"ROOT"}}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "1")
	cols, err := c.Collections(context.Background(), "777", 0)
	if err != nil {
		t.Fatalf("Collections: %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("collections = %d, want 2", len(cols))
	}
	if cols[0].Data.ParentCollection != "" {
		t.Errorf("false parent should decode to empty, got %q", cols[0].Data.ParentCollection)
	}
	if cols[1].Data.ParentCollection != "ROOT" {
		t.Errorf("parent = %q, want ROOT", cols[1].Data.ParentCollection)
	}
}

func TestGroupsUsesUserPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/12345/groups" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `[{"id":777,"version":2,"data":{"id":777,"version":2,"name":"Lab","type":"PublicOpen"}}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "12345")
	groups, err := c.Groups(context.Background())
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != 777 || groups[0].Data.Name != "Lab" {
		t.Errorf("groups = %+v", groups)
	}
}

func TestDownloadAttachmentWritesFile(t *testing.T) {
	payload := []byte("%PDF-1.4 payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/groups/777/items/KEY1/file" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "KEY1.pdf")
	c := NewClient(srv.URL, "secret", "1")
	if err := c.DownloadAttachment(context.Background(), "777", "KEY1", dest); err != nil {
		t.Fatalf("DownloadAttachment: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload mismatch")
	}
}

func TestErrorStatusSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", "1")
	if _, _, err := c.Items(context.Background(), "777", 0); err == nil {
		t.Error("Items should fail on a non-200 response")
	}
	if err := c.DownloadAttachment(context.Background(), "777", "KEY1", filepath.Join(t.TempDir(), "x.pdf")); err == nil {
		t.Error("DownloadAttachment should fail on a non-200 response")
	}
}

// Command orphan_check scans the record store for users that have no
// profile. The enrollment writer compensates failed profile creation by
// deleting the user again; when that compensating delete also fails the
// orphan is logged, and this script is the periodic sweep that finds any
// such rows so operators can repair them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

type listResponse struct {
	Page       int                      `json:"page"`
	TotalItems int                      `json:"totalItems"`
	Items      []map[string]interface{} `json:"items"`
}

func main() {
	baseURL := flag.String("store", envOr("STORE_BASE_URL", "http://localhost:8090"), "record store base URL")
	token := flag.String("token", os.Getenv("STORE_TOKEN"), "record store bearer token")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	client := &http.Client{Timeout: *timeout}

	users, err := listAll(client, *baseURL, *token, "users", "")
	if err != nil {
		log.Fatalf("list users: %v", err)
	}

	profiles, err := listAll(client, *baseURL, *token, "user_profiles", "")
	if err != nil {
		log.Fatalf("list profiles: %v", err)
	}

	profiled := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		if userID, ok := p["user_id"].(string); ok {
			profiled[userID] = struct{}{}
		}
	}

	var orphans int
	for _, u := range users {
		id, _ := u["id"].(string)
		if _, ok := profiled[id]; ok {
			continue
		}
		orphans++
		email, _ := u["email"].(string)
		role, _ := u["role"].(string)
		fmt.Printf("orphan\t%s\t%s\t%s\n", id, email, role)
	}

	fmt.Fprintf(os.Stderr, "checked %d users, %d profiles, found %d orphan(s)\n", len(users), len(profiles), orphans)
	if orphans > 0 {
		os.Exit(1)
	}
}

func listAll(client *http.Client, baseURL, token, collection, filter string) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		params.Set("perPage", "500")
		if filter != "" {
			params.Set("filter", filter)
		}

		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/collections/%s/records?%s", baseURL, collection, params.Encode()), nil)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("%s: unexpected status %d", collection, resp.StatusCode)
		}

		var body listResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		out = append(out, body.Items...)
		if len(body.Items) < 500 || len(out) >= body.TotalItems {
			return out, nil
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

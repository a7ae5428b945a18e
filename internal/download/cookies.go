// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
)

// LoadCookieJar builds a cookie jar from a Netscape-format cookies.txt file
// (the format browser exporters and curl write). An empty path returns a nil
// jar, which http.Client treats as "no cookies". Malformed lines are skipped;
// only an unreadable file is an error.
func LoadCookieJar(path string) (http.CookieJar, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cookie file %s: %w", path, err)
	}
	defer f.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		// #HttpOnly_ prefixed lines are real cookies, other # lines are comments.
		line = strings.TrimPrefix(line, "#HttpOnly_")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// domain, include-subdomains, path, secure, expiry, name, value
		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			continue
		}

		domain := strings.TrimPrefix(fields[0], ".")
		cookie := &http.Cookie{
			Name:   fields[5],
			Value:  fields[6],
			Path:   fields[2],
			Secure: strings.EqualFold(fields[3], "TRUE"),
		}
		// A leading dot marks a domain cookie; anything else stays host-only
		// (a domain attribute is also illegal for IP hosts).
		if strings.HasPrefix(fields[0], ".") {
			cookie.Domain = domain
		}

		scheme := "http"
		if cookie.Secure {
			scheme = "https"
		}
		u := &url.URL{Scheme: scheme, Host: domain, Path: fields[2]}
		jar.SetCookies(u, []*http.Cookie{cookie})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cookie file %s: %w", path, err)
	}

	return jar, nil
}

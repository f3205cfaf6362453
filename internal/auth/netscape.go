package auth

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

const netscapeHeader = "# Netscape HTTP Cookie File\n# https://curl.haxx.se/rfc/cookie_spec.html\n# This is a generated file! Do not edit.\n\n"

// WriteNetscapeFile saves the cookies to a file in Netscape format.
func WriteNetscapeFile(cookies []*http.Cookie, cookieFilePath string) error {
	if len(cookies) == 0 {
		logging.I("No cookies to write to file %q", cookieFilePath)
		return nil
	}

	file, err := os.OpenFile(cookieFilePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, consts.PermsCookieFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.E("failed to close file %q due to error: %v", cookieFilePath, err)
		}
	}()

	if _, err = file.WriteString(netscapeHeader); err != nil {
		return err
	}

	logging.D(1, "Saving %d cookies to file %s...", len(cookies), cookieFilePath)

	for _, cookie := range cookies {
		domain := cookie.Domain
		if domain == "" {
			domain = consts.PlatformRootDomain
		}

		if !strings.HasPrefix(domain, ".") && strings.Count(domain, ".") > 1 {
			domain = "." + domain
		}

		includeSubs := "FALSE"
		if strings.HasPrefix(domain, ".") {
			includeSubs = "TRUE"
		}

		secure := "FALSE"
		if cookie.Secure {
			secure = "TRUE"
		}

		// Session cookies carry a zero expiry
		expires := int64(0)
		if !cookie.Expires.IsZero() {
			expires = cookie.Expires.Unix()
		}

		_, err := fmt.Fprintf(file, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain, includeSubs, cookie.Path, secure, expires, cookie.Name, cookie.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadNetscapeFile parses a Netscape-format cookie file. Malformed lines
// are skipped.
func ReadNetscapeFile(cookieFilePath string) ([]*http.Cookie, error) {
	file, err := os.Open(cookieFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie file %q: %w", cookieFilePath, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.E("failed to close file %q due to error: %v", cookieFilePath, err)
		}
	}()

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			logging.D(2, "Skipping malformed cookie line in %q", cookieFilePath)
			continue
		}

		c := &http.Cookie{
			Domain: fields[0],
			Path:   fields[2],
			Secure: fields[3] == "TRUE",
			Name:   fields[5],
			Value:  fields[6],
		}
		if expires, err := strconv.ParseInt(fields[4], 10, 64); err == nil && expires > 0 {
			c.Expires = time.Unix(expires, 0)
		}
		cookies = append(cookies, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cookie file %q: %w", cookieFilePath, err)
	}
	return cookies, nil
}

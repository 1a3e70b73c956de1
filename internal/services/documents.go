// documents.go
//
// A scholarship-application management portal data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of gss-portal.
// gss-portal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// gss-portal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with gss-portal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/gss-portal/internal/models"
	"github.com/localnerve/gss-portal/internal/types"
	"gorm.io/gorm"
)

// MaxDocumentSize caps uploaded supporting documents at 10 MB.
const MaxDocumentSize = 10 * 1024 * 1024

// DocumentStore is the boundary to the document storage collaborator. Put
// persists bytes under a generated key; SignedURL issues a time-limited
// retrieval URL for an existing key.
type DocumentStore interface {
	Put(key string, data []byte) error
	SignedURL(key string, expiresAt time.Time) (string, error)
	VerifySignedURL(key, signature string, expires int64, now time.Time) bool
}

// ValidateDocument enforces the upload scan: .pdf extension and the size cap.
func ValidateDocument(filename string, size int) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return &types.ValidationError{
			Message: "only PDF documents are accepted",
			Fields:  []types.FieldError{{Field: "document", Message: "must be a .pdf file"}},
		}
	}
	if size <= 0 {
		return &types.ValidationError{
			Message: "document is empty",
			Fields:  []types.FieldError{{Field: "document", Message: "must not be empty"}},
		}
	}
	if size > MaxDocumentSize {
		return &types.ValidationError{
			Message: "document exceeds the 10MB size limit",
			Fields:  []types.FieldError{{Field: "document", Message: "must be 10MB or smaller"}},
		}
	}
	return nil
}

// DocumentMeta is the stored document reference persisted on the application.
type DocumentMeta struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
	Uploaded string `json:"uploaded"`
}

// AttachDocument validates, stores, and records the uploaded PDF bundle on
// the caller's own application. The application must belong to the profile
// bound to userID. A later upload replaces the stored reference; the old
// object is left for storage lifecycle cleanup.
func AttachDocument(db *gorm.DB, store DocumentStore, appID uint64, userID string, filename string, data []byte) (*DocumentMeta, error) {
	if err := ValidateDocument(filename, len(data)); err != nil {
		return nil, err
	}

	var profile models.ApplicantProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFound{Kind: "profile", ID: userID}
		}
		return nil, err
	}

	var app models.Application
	if err := db.Where("application_id = ? AND applicant_id = ?", appID, profile.ProfileID).
		First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFound{Kind: "application", ID: strconv.FormatUint(appID, 10)}
		}
		return nil, err
	}

	key := fmt.Sprintf("applications/%d/%s.pdf", appID, uuid.NewString())
	if err := store.Put(key, data); err != nil {
		return nil, err
	}

	meta := &DocumentMeta{
		Key:      key,
		Filename: filepath.Base(filename),
		Size:     len(data),
		Uploaded: time.Now().UTC().Format(time.RFC3339),
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	err = db.Model(&app).Update("documents_pdf", models.NewJSON(encoded)).Error
	if err != nil {
		return nil, err
	}

	return meta, nil
}

// LocalDocumentStore keeps documents on the local filesystem and signs
// retrieval URLs with an HMAC over (key, expiry).
type LocalDocumentStore struct {
	Root    string
	BaseURL string
	Secret  []byte
}

// NewLocalDocumentStore creates a filesystem-backed store rooted at root.
func NewLocalDocumentStore(root, baseURL, secret string) *LocalDocumentStore {
	return &LocalDocumentStore{
		Root:    root,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Secret:  []byte(secret),
	}
}

// Put persists the document bytes under the key.
func (s *LocalDocumentStore) Put(key string, data []byte) error {
	path := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o640)
}

// Open returns the stored bytes for the key.
func (s *LocalDocumentStore) Open(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(key)))
}

// SignedURL issues a retrieval URL valid until expiresAt.
func (s *LocalDocumentStore) SignedURL(key string, expiresAt time.Time) (string, error) {
	expires := expiresAt.Unix()
	sig := s.sign(key, expires)
	return fmt.Sprintf("%s/%s?expires=%d&signature=%s", s.BaseURL, key, expires, sig), nil
}

// VerifySignedURL checks the signature and expiry of a retrieval request.
func (s *LocalDocumentStore) VerifySignedURL(key, signature string, expires int64, now time.Time) bool {
	if now.Unix() > expires {
		return false
	}
	expected := s.sign(key, expires)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *LocalDocumentStore) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.Secret)
	fmt.Fprintf(mac, "%s:%d", key, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

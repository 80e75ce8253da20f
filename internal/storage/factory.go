package storage

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/eyevinn-osaas/ograf-editor/internal/adapters/storage/gdrive"
	"github.com/eyevinn-osaas/ograf-editor/internal/adapters/storage/localfs"
)

// NewProvider selects a storage backend from STORAGE_PROVIDER: "localfs"
// (default) or "gdrive".
func NewProvider() (Provider, error) {
	provider := os.Getenv("STORAGE_PROVIDER")
	if provider == "" {
		provider = "localfs"
	}

	switch provider {
	case "localfs":
		root := os.Getenv("STORAGE_LOCAL_ROOT")
		if root == "" {
			root = "./published"
		}
		return localfs.New(root), nil

	case "gdrive":
		return newGDriveProvider()

	default:
		return nil, fmt.Errorf("storage: unknown provider %q", provider)
	}
}

func newGDriveProvider() (Provider, error) {
	ctx := context.Background()

	clientID, err := requireEnv("GDRIVE_CLIENT_ID")
	if err != nil {
		return nil, err
	}
	clientSecret, err := requireEnv("GDRIVE_CLIENT_SECRET")
	if err != nil {
		return nil, err
	}
	refreshToken, err := requireEnv("GDRIVE_REFRESH_TOKEN")
	if err != nil {
		return nil, err
	}
	folderID := os.Getenv("GDRIVE_FOLDER_ID")

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drive.DriveFileScope},
	}

	tok := &oauth2.Token{RefreshToken: refreshToken}
	srv, err := drive.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, tok)))
	if err != nil {
		return nil, err
	}

	return gdrive.NewClient(srv, folderID), nil
}

func requireEnv(k string) (string, error) {
	v := os.Getenv(k)
	if v == "" {
		return "", fmt.Errorf("storage: missing env %s", k)
	}
	return v, nil
}

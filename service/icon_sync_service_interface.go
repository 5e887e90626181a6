package service

// IconSyncServiceInterface defines the contract for icon library synchronization
type IconSyncServiceInterface interface {
	SyncIcons(folderID string) (total int, downloaded int, skipped int, errors []string, err error)
}

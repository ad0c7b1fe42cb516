package config

const (
	defaultStagingDir     = "~/.local/share/stockroom/photos/staging"
	defaultCategoryDir    = "~/.local/share/stockroom/photos/by_category"
	defaultItemsDir       = "~/.local/share/stockroom/photos/ready_to_list"
	defaultDataDir        = "~/.local/share/stockroom/data"
	defaultLogDir         = "~/.local/share/stockroom/logs"
	defaultAPIBind        = "127.0.0.1:8001"
	defaultLedgerFileName = "inventory_tracker.csv"
	defaultIDPrefix       = "DP"
	defaultIDStart        = 1
	defaultIDWidth        = 3
	defaultBankFile       = "hashtag_bank.csv"
	defaultMaxPerItem     = 4
	defaultPreviewMaxDim  = 800
	defaultPreviewQuality = 75
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

func defaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".heic"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir:  defaultStagingDir,
			CategoryDir: defaultCategoryDir,
			ItemsDir:    defaultItemsDir,
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
			APIBind:     defaultAPIBind,
		},
		Ledger: Ledger{
			FileName: defaultLedgerFileName,
			IDPrefix: defaultIDPrefix,
			IDStart:  defaultIDStart,
			IDWidth:  defaultIDWidth,
		},
		Hashtags: Hashtags{
			BankFile: defaultBankFile,
		},
		Photos: Photos{
			MaxPerItem:     defaultMaxPerItem,
			PreviewMaxDim:  defaultPreviewMaxDim,
			PreviewQuality: defaultPreviewQuality,
			Extensions:     defaultExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

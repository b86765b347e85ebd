package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration
		"Building %s report":                       "%s レポートを作成中",
		"Read %d lines from %d inputs, %d matched": "%d 個の入力から %d 行を読み込み、%d 行が一致しました",

		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",

		// Timing (info)
		"%s finished in %s":               "%s が %s で完了しました",
		"%s finished in %s (RSS %.1f MB)": "%s が %s で完了しました (RSS %.1f MB)",

		// Source component
		"Reading source %s":             "ソース %s を読み込み中",
		"Finished source %s":            "ソース %s の読み込みが完了しました",
		"Source not found: %s":          "ソースが見つかりません: %s",
		"Permission denied: %s":         "アクセスが拒否されました: %s",
		"Failed to read source %s: %s":  "ソース %s の読み込みに失敗しました: %s",
		"Source is empty: %s":           "ソースが空です: %s",
		"Source is a directory: %s":     "ソースがディレクトリです: %s",
		"No files match pattern %s":     "パターン %s に一致するファイルがありません",
		"Cannot expand pattern %s: %s":  "パターン %s を展開できません: %s",

		// Extract stage
		"Scanning %d inputs with %d workers": "%d 個の入力を %d ワーカーで走査中",
		"Matched %d of %d lines":             "%d 行が一致しました (全 %d 行)",

		// Render stage
		"Rendered %d paths": "%d 個のパスを出力しました",
	})
}

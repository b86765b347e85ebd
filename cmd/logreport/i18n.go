// Package main provides localization for the logreport CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Report":  "レポート",
		"Sources": "ソース",
		"Logging": "ログ",

		// Root command
		"Summarize request log lines by handler and severity": "リクエストログをハンドラと重要度ごとに集計",
		"logreport [options] FILE...":                          "logreport [オプション] ファイル...",

		// Report flags
		"Report type (handlers)":  "レポートの種類（handlers）",
		"YAML configuration file": "YAML設定ファイル",

		// Source flags
		"How unreadable files are handled (lazy, eager)":             "読み込めないファイルの扱い（lazy, eager）",
		"Number of files read in parallel (default: number of CPUs)": "並列に読み込むファイル数（デフォルト: CPU数）",

		// Logging flags
		"Log level (debug, info, warn, error)":       "ログレベル（debug, info, warn, error）",
		"Suppress all log output on the console":     "コンソールへのログ出力を全て抑制",
		"Also write log output to a rotating file":   "ログをローテーションするファイルにも出力",
		"Log elapsed time and memory use of the run": "実行時間とメモリ使用量をログに出力",

		// Errors
		"Error: %s":                          "エラー: %s",
		"Run 'logreport --help' for usage.":  "使い方は 'logreport --help' を参照してください。",
		"at least one log file is required": "ログファイルを1つ以上指定してください",
	})
}

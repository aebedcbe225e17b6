// Package file provides the JSON file implementation of driven.HistoryStore
// and a driven.HistoryWatcher built on fsnotify.
//
// The history log is a single JSON document named after driven.HistoryKey
// (ia_jur_history.json) in the data directory. Writes go to a temporary
// file that is renamed over the document, so readers never see a partial
// write.
package file

// Package devkit provides test doubles for the Sync client: an in-memory
// Sync REST service served over httptest and a scripted transport adapter
// that records requests.
package devkit

package service

// TimeNow exposes the timeNow hook to external tests.
var TimeNow = &timeNow

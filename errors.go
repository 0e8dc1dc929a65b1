/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/


package fieldsync

import "errors"

var (
	// ErrUnrecognizedRecord marks a payload that matches no domain kind.
	ErrUnrecognizedRecord = errors.New("record does not match any known domain kind")

	// ErrSerialization marks a payload that cannot be decoded.
	ErrSerialization = errors.New("record payload cannot be decoded")

	// ErrUnsupportedAction marks an action the central repository has no operation for.
	ErrUnsupportedAction = errors.New("record action is not supported by the central repository")

	// ErrSyncInProgress is returned when another pass holds the pass lock.
	ErrSyncInProgress = errors.New("a sync pass is already running")
)

// isPermanent reports errors that retrying cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, ErrUnrecognizedRecord) ||
		errors.Is(err, ErrSerialization) ||
		errors.Is(err, ErrUnsupportedAction)
}

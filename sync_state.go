package fieldsync

import "github.com/fieldsync/fieldsync/model"

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeTransient
	outcomePermanent
)

func (o outcome) String() string {
	switch o {
	case outcomeSuccess:
		return "success"
	case outcomeTransient:
		return "transient"
	case outcomePermanent:
		return "permanent"
	}
	return "unknown"
}

// outcomeOf maps a central call to an outcome. A conflict means the row is already
// there, so it counts as success.
func outcomeOf(result model.Result, err error) outcome {
	if err != nil {
		if isPermanent(err) {
			return outcomePermanent
		}
		return outcomeTransient
	}
	if result.IsSuccess() || result.IsConflict() {
		return outcomeSuccess
	}
	return outcomeTransient
}

type disposition int

const (
	dispositionArchive disposition = iota
	dispositionRequeue
	dispositionSkip
)

// transition applies the two-strike policy. A transient failure of a PENDING
// envelope marks it FAILED and keeps it queued. A second transient failure, or any
// permanent one, archives it as FAILED.
func transition(envelope model.RecordEnvelope, o outcome) (model.RecordEnvelope, disposition) {
	switch o {
	case outcomeSuccess:
		envelope.Status = model.StatusSuccess
		return envelope, dispositionArchive
	case outcomeTransient:
		if envelope.Status != model.StatusFailed {
			envelope.Status = model.StatusFailed
			return envelope, dispositionRequeue
		}
	}
	envelope.Status = model.StatusFailed
	return envelope, dispositionArchive
}

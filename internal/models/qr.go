package models

// QRStatus is the login challenge poll state.
type QRStatus string

const (
	QRWaitingScan    QRStatus = "waiting_scan"
	QRWaitingConfirm QRStatus = "waiting_confirm"
	QRSuccess        QRStatus = "success"
	QRExpired        QRStatus = "expired"
	QRError          QRStatus = "error"
)

// QRChallenge is one login challenge. DisplayPayload is rendered to the user
// as a QR code; Key identifies the challenge when polling.
type QRChallenge struct {
	DisplayPayload string
	Key            string
}

// QRPollResult reports one poll of a login challenge. ConfirmURL is set only
// on success.
type QRPollResult struct {
	Status     QRStatus
	Message    string
	ConfirmURL string
}

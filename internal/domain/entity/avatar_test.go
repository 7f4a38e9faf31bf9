package entity

import (
	"encoding/json"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFaceRect(t *testing.T) {
	r := FaceRect()
	require.Equal(t, image.Rect(70, 30, 210, 170), r)
	require.Equal(t, FaceSize, r.Dx())
	require.Equal(t, FaceSize, r.Dy())
}

func TestBodyPolygon(t *testing.T) {
	require.Equal(t, []image.Point{{90, 175}, {190, 175}, {185, 370}, {95, 370}}, BodyPolygon())
}

func TestAvatarResult_JSON(t *testing.T) {
	raw, err := json.Marshal(AvatarFailed(MsgNoFaceDetected))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":false,"avatar_base64":null,"error":"Ingen fjes funnet. Prøv et tydeligere selfie."}`, string(raw))

	raw, err = json.Marshal(AvatarSucceeded("aGk="))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"avatar_base64":"aGk=","error":null}`, string(raw))
}

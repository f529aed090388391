// Copyright (c) 2026 OpsDesk. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/portal/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec, err := sec.NewCookieCodec(testSecret, "portal.test", time.Hour)
	require.NoError(t, err)

	value, err := codec.Mint("0191d2a0-aaaa-7bbb-8ccc-000000000001")
	require.NoError(t, err)

	sid, err := codec.Verify(value)
	require.NoError(t, err)
	assert.Equal(t, "0191d2a0-aaaa-7bbb-8ccc-000000000001", sid)
}

func TestCookieCodec_RejectsShortSecret(t *testing.T) {
	_, err := sec.NewCookieCodec("too-short", "portal.test", time.Hour)
	assert.Error(t, err)
}

func TestCookieCodec_RejectsTamperedValue(t *testing.T) {
	codec, err := sec.NewCookieCodec(testSecret, "portal.test", time.Hour)
	require.NoError(t, err)

	value, err := codec.Mint("sid-1")
	require.NoError(t, err)

	_, err = codec.Verify(value + "x")
	assert.Error(t, err)
}

func TestCookieCodec_RejectsForeignKey(t *testing.T) {
	codecA, err := sec.NewCookieCodec(testSecret, "portal.test", time.Hour)
	require.NoError(t, err)
	codecB, err := sec.NewCookieCodec("fedcba9876543210fedcba9876543210", "portal.test", time.Hour)
	require.NoError(t, err)

	value, err := codecA.Mint("sid-1")
	require.NoError(t, err)

	_, err = codecB.Verify(value)
	assert.Error(t, err)
}

func TestCookieCodec_RejectsExpired(t *testing.T) {
	codec, err := sec.NewCookieCodec(testSecret, "portal.test", -time.Minute)
	require.NoError(t, err)

	value, err := codec.Mint("sid-1")
	require.NoError(t, err)

	_, err = codec.Verify(value)
	assert.Error(t, err)
}

/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package s3

import (
	"testing"

	"gotest.tools/assert"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{
			name: "complete",
			creds: Credentials{
				Endpoint:  "https://s3.example.com",
				AccessKey: "ak",
				SecretKey: "sk",
				Bucket:    "mybucket",
			},
			wantErr: false,
		},
		{
			name: "missing access key",
			creds: Credentials{
				Endpoint:  "https://s3.example.com",
				SecretKey: "sk",
				Bucket:    "mybucket",
			},
			wantErr: true,
		},
		{
			name: "missing secret key",
			creds: Credentials{
				Endpoint:  "https://s3.example.com",
				AccessKey: "ak",
				Bucket:    "mybucket",
			},
			wantErr: true,
		},
		{
			name: "missing endpoint",
			creds: Credentials{
				AccessKey: "ak",
				SecretKey: "sk",
				Bucket:    "mybucket",
			},
			wantErr: true,
		},
		{
			name: "missing bucket",
			creds: Credentials{
				Endpoint:  "https://s3.example.com",
				AccessKey: "ak",
				SecretKey: "sk",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr {
				assert.Assert(t, err != nil, "expected error but got none")
				return
			}
			assert.NilError(t, err)
		})
	}
}

func TestRewritePublicURL(t *testing.T) {
	tests := []struct {
		name   string
		public string
		in     string
		want   string
	}{
		{
			name:   "no public endpoint",
			public: "",
			in:     "http://minio.internal:9000/bucket/key?X-Amz-Signature=abc",
			want:   "http://minio.internal:9000/bucket/key?X-Amz-Signature=abc",
		},
		{
			name:   "host and scheme replaced",
			public: "https://s3.example.com",
			in:     "http://minio.internal:9000/bucket/key?X-Amz-Signature=abc",
			want:   "https://s3.example.com/bucket/key?X-Amz-Signature=abc",
		},
		{
			name:   "public endpoint with port",
			public: "https://s3.example.com:8443",
			in:     "http://minio.internal:9000/bucket/a/b/c",
			want:   "https://s3.example.com:8443/bucket/a/b/c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := Credentials{PublicEndpoint: tt.public}
			assert.Equal(t, tt.want, creds.RewritePublicURL(tt.in))
		})
	}
}

/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package apiutils

import (
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// Logger returns a gin middleware that logs every request through klog.
// Requests that collected errors are logged at error level with the private
// error strings attached.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		if len(c.Errors) > 0 {
			klog.Errorf("%s %s %d %v %s %s", c.Request.Method, path, status, latency,
				c.ClientIP(), c.Errors.ByType(gin.ErrorTypePrivate).String())
			return
		}
		klog.Infof("%s %s %d %v %s", c.Request.Method, path, status, latency, c.ClientIP())
	}
}

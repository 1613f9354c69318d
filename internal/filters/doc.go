// Package filters provides the image filters used by page analysis.
//
// All filters operate on raster.FloatImage planes and treat pixels beyond the
// plane edge as copies of the nearest edge pixel.
//
// # Kernels
//
// Gaussian smoothing and Gaussian-derivative kernels:
//
//	k := filters.GaussianKernel(2.0)
//	d := filters.GaussianDerivativeKernel(leading / 6)
//
// # Convolution
//
// Separable convolution along one axis:
//
//	smoothed := filters.ConvolveX(plane, k)
//	dy := filters.ConvolveY(smoothed, d)
//
// # Resampling
//
// MinReduce shrinks a gray region by keeping the darkest pixel of every
// bucket; Downscale resamples a gray image with a bilinear kernel.
package filters

// Package renderer supervises the components of a running media
// renderer: the SSDP discovery engine, the HTTP control dispatcher, and
// the optional mDNS advertiser. The supervisor owns lifecycle and
// ordering only; it contains no protocol logic of its own.
package renderer
